package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.-]{6,32}$`)

var registerOnce sync.Once

// RegisterValidators installs the custom tags on gin's validator and reports
// field names by their json or form name. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				if name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]; name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})
}

// fieldMessages are the user-facing messages for common rule failures, keyed by field then tag.
var fieldMessages = map[string]map[string]string{
	"name":              {"required": "Name is required", "notblank": "Name is required", "*": "Name is too long"},
	"email":             {"*": "Must be a valid email address"},
	"authorEmail":       {"*": "Author email is invalid"},
	"password":          {"*": "Password must be at least 6 characters long"},
	"newPassword":       {"*": "Password must be at least 6 characters long"},
	"token":             {"*": "Token is required"},
	"resetPasswordLink": {"*": "Reset link is required"},
	"tokenId":           {"*": "Google token is required"},
	"code":              {"*": "Authorization code is required"},
	"username":          {"*": "Username must be 6 to 32 lowercase letters, digits, dots, dashes or underscores"},
	"about":             {"*": "About is too long"},
}

// ValidationMessage turns a binding error into one readable sentence.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	if byTag, ok := fieldMessages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
		if msg, ok := byTag["*"]; ok {
			return msg
		}
	}
	return fmt.Sprintf("Invalid value for %s", fe.Field())
}
