package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/blog_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogging_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(&buf, nil))))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside")
		c.Status(http.StatusNoContent)
	})

	t.Run("keeps a well-formed incoming id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, id, w.Header().Get("X-Request-ID"))
		assert.Contains(t, buf.String(), id)
	})

	t.Run("replaces a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(got)
		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "<script>")
	})
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))
}
