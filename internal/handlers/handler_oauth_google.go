package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/dto"
	"github.com/SscSPs/blog_backend/internal/middleware"
	"github.com/SscSPs/blog_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler logs users in with a Google ID token or authorization code.
type googleOAuthHandler struct {
	authService portssvc.SessionSvc
	cfg         *config.Config
}

func newGoogleOAuthHandler(as portssvc.SessionSvc, cfg *config.Config) *googleOAuthHandler {
	return &googleOAuthHandler{authService: as, cfg: cfg}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, authService portssvc.SessionSvc) {
	h := newGoogleOAuthHandler(authService, cfg)
	rg.POST("/google-login", h.googleLogin)
	rg.POST("/google/exchange-code", h.exchangeCode)
}

// googleLogin godoc
// @Summary Sign in with a Google ID token
// @Description Creates the account on first login. Accounts created this way cannot sign in with a password until one is set through password reset.
// @Tags oauth
// @Accept json
// @Produce json
// @Param body body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Email not verified"
// @Failure 401 {object} dto.ErrorResponse "Google login failed"
// @Router /google-login [post]
func (h *googleOAuthHandler) googleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.authService.GoogleLogin(c.Request.Context(), req.TokenID)
	if err != nil {
		respondError(c, err)
		return
	}
	setSessionCookie(c, h.cfg, session)
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code for a session
// @Tags oauth
// @Accept json
// @Produce json
// @Param body body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired authorization code"
// @Failure 502 {object} dto.ErrorResponse
// @Router /google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.authService.GoogleExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Google code exchanged", slog.String("user_id", session.User.UserID))
	setSessionCookie(c, h.cfg, session)
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}
