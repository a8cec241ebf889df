package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/blog_backend/internal/core/domain"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/dto"
	"github.com/SscSPs/blog_backend/internal/platform/config"
	"github.com/SscSPs/blog_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler serves registration, password reset and sign-in.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	cfg         *config.Config
}

func newAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{authService: as, cfg: cfg}
}

// registerAuthRoutes sets up the account routes. limit guards the endpoints that send email or check passwords.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, authService portssvc.AuthSvcFacade, limit gin.HandlerFunc) {
	h := newAuthHandler(authService, cfg)

	rg.POST("/pre-signup", limit, h.preSignup)
	rg.POST("/signup", h.signup)
	rg.POST("/signin", limit, h.signin)
	rg.GET("/signout", h.signout)
	rg.PUT("/forgot-password", limit, h.forgotPassword)
	rg.PUT("/reset-password", h.resetPassword)
}

// setSessionCookie mirrors the session token into an HTTP-only cookie.
func setSessionCookie(c *gin.Context, cfg *config.Config, session *domain.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.SessionCookieName, session.Token, int(cfg.JWTExpiryDuration.Seconds()), "/", "", cfg.IsProduction, true)
}

// preSignup godoc
// @Summary Request an account activation link
// @Description Emails a link that creates the account when visited. Nothing is stored before that.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.PreSignupRequest true "Registration details"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Email is taken"
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Email could not be sent"
// @Router /pre-signup [post]
func (h *authHandler) preSignup(c *gin.Context) {
	var req dto.PreSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.RequestSignup(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, fmt.Sprintf("Email has been sent to %s. Follow the instructions to activate your account.", domain.NormalizeEmail(req.Email)))
}

// signup godoc
// @Summary Activate an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Activation token"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Expired link"
// @Failure 409 {object} dto.ErrorResponse
// @Router /signup [post]
func (h *authHandler) signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if _, err := h.authService.CompleteSignup(c.Request.Context(), req.Token); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Signup success! Please signin.")
}

// signin godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SigninRequest true "Credentials"
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /signin [post]
func (h *authHandler) signin(c *gin.Context) {
	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	setSessionCookie(c, h.cfg, session)
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// signout only clears the cookie. Issued tokens stay valid until they expire.
func (h *authHandler) signout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookieName, "", -1, "/", "", h.cfg.IsProduction, true)
	respondMessage(c, "Signout success")
}

// forgotPassword godoc
// @Summary Request a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /forgot-password [put]
func (h *authHandler) forgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, fmt.Sprintf("Email has been sent to %s. Follow the instructions to reset your password. Link expires in %s.",
		domain.NormalizeEmail(req.Email), utils.HumanDuration(h.cfg.ResetPasswordExpiry)))
}

// resetPassword godoc
// @Summary Set a new password with a reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Expired link"
// @Failure 404 {object} dto.ErrorResponse "Link already used"
// @Router /reset-password [put]
func (h *authHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.CompletePasswordReset(c.Request.Context(), req.ResetPasswordLink, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Great! Now you can login with the new password")
}
