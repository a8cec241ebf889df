package utils

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// Slugify makes a lowercase URL-safe slug.
func Slugify(s string) string {
	return slug.Make(s)
}

// StripHTML removes all markup and unescapes entities.
func StripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// SmartTrim shortens s to at most length runes, cutting back to the last delim
// inside the window and appending appendix when anything was removed.
func SmartTrim(s string, length int, delim, appendix string) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	runes := []rune(s)
	end := length + utf8.RuneCountInString(delim)
	if end > len(runes) {
		end = len(runes)
	}
	trimmed := string(runes[:end])
	if delim != "" {
		if i := strings.LastIndex(trimmed, delim); i >= 0 {
			trimmed = trimmed[:i]
		}
	}
	if trimmed != "" {
		trimmed += appendix
	}
	return trimmed
}

// Prefix returns the first n runes of s.
func Prefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// SplitCSV splits a comma separated list, dropping blanks.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HumanDuration renders 10m0s as "10 minutes".
func HumanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return pluralize(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return pluralize(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
