package middleware

import (
	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey holds the session subject set by RequireSignin.
const userIDKey = contextKey("userID")

// profileKey holds the *domain.User loaded by AuthMiddleware or AdminMiddleware.
const profileKey = contextKey("profile")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok && userID != ""
	}
	if v, ok := c.Request.Context().Value(userIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// GetProfileFromContext returns the user loaded by the auth gates.
func GetProfileFromContext(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(string(profileKey))
	if !exists {
		return nil, false
	}
	profile, ok := v.(*domain.User)
	return profile, ok && profile != nil
}
