package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// abortWithError writes {"error": message} with the status of err.
func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.StatusOf(err), gin.H{"error": apperrors.MessageOf(err)})
}

// sessionToken reads a bearer token from the Authorization header, then from the session cookie.
func sessionToken(c *gin.Context, cookieName string) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

// RequireSignin rejects requests without a valid session token and records the subject.
func RequireSignin(tokenSvc portssvc.TokenSvcFacade, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token := sessionToken(c, cookieName)
		if token == "" {
			logger.Warn("Session token missing")
			abortWithError(c, apperrors.NewUnauthorizedError("Authorization header required"))
			return
		}

		userID, err := tokenSvc.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Invalid session token", slog.String("error", err.Error()))
			abortWithError(c, apperrors.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}

// loadProfile resolves the session subject to a user and stores it on the context.
func loadProfile(c *gin.Context, userSvc portssvc.UserReaderSvc) (*domain.User, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		abortWithError(c, apperrors.NewUnauthorizedError("Authorization header required"))
		return nil, false
	}
	user, err := userSvc.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			abortWithError(c, apperrors.NewNotFoundError("User not found!"))
			return nil, false
		}
		GetLoggerFromCtx(c.Request.Context()).Error("Failed to load session user", slog.String("error", err.Error()))
		abortWithError(c, err)
		return nil, false
	}
	c.Set(string(profileKey), user)
	return user, true
}

// AuthMiddleware loads the signed-in user. Must run after RequireSignin.
func AuthMiddleware(userSvc portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadProfile(c, userSvc); !ok {
			return
		}
		c.Next()
	}
}

// AdminMiddleware loads the signed-in user and requires the admin role. Must run after RequireSignin.
func AdminMiddleware(userSvc portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadProfile(c, userSvc)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			GetLoggerFromCtx(c.Request.Context()).Warn("Non-admin hit admin resource")
			abortWithError(c, apperrors.NewForbiddenError("Admin resource. Access denied."))
			return
		}
		c.Next()
	}
}

// CanUpdateDeleteBlog only lets the author of the blog named by :slug through.
// Admins get no exemption. Must run after AuthMiddleware.
func CanUpdateDeleteBlog(blogSvc portssvc.BlogReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := GetProfileFromContext(c)
		if !ok {
			abortWithError(c, apperrors.NewUnauthorizedError("Authorization header required"))
			return
		}

		blog, err := blogSvc.GetBlog(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				abortWithError(c, apperrors.NewNotFoundError("Blog not found"))
				return
			}
			abortWithError(c, err)
			return
		}

		if blog.AuthorID != profile.UserID {
			abortWithError(c, apperrors.NewForbiddenError("You are not authorized"))
			return
		}
		c.Next()
	}
}
