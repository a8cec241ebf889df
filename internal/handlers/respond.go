package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/dto"
	"github.com/SscSPs/blog_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes {"error": message} with the status mapped from err.
// Server faults are logged with the cause; the client only sees the generic message.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Error: apperrors.MessageOf(err)})
}

// respondBindError rejects a malformed body before any handler logic runs.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: dto.ValidationMessage(err)})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}
