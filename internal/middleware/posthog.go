package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/blog_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// sensitivePrefixes never have their parameters forwarded: they carry tokens.
var sensitivePrefixes = []string{"/api/signup", "/api/reset-password", "/api/google"}

// PosthogMiddleware tracks successful requests. Signed-in callers are identified by user id,
// anonymous ones by client IP.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		distinctID, exists := GetUserIDFromContext(c)
		if !exists {
			distinctID = "anon:" + c.ClientIP()
		}

		eventName := EventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 && !isSensitive(c.FullPath()) {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(distinctID, eventName, props)
	}
}

// EventName turns a route pattern into an event name: "/api/blog/:slug" -> "api_blog_slug".
func EventName(fullPath string) string {
	name := strings.TrimPrefix(fullPath, "/")
	name = strings.ReplaceAll(name, ":", "")
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ReplaceAll(name, "/", "_")
}

func isSensitive(path string) bool {
	for _, p := range sensitivePrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
