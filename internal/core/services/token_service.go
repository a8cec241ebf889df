package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/platform/config"
	"github.com/SscSPs/blog_backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Token audiences. A token is only accepted by the verifier of its own audience.
const (
	audienceActivation = "account-activation"
	audienceReset      = "password-reset"
	audienceSession    = "session"
)

// activationClaims carry the pending registration. The password is only held for the
// lifetime of the token and is hashed on redemption.
type activationClaims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	jwt.RegisteredClaims
}

// tokenService implements TokenSvcFacade with one HMAC secret per purpose.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

func (s *tokenService) IssueActivationToken(ctx context.Context, pending domain.PendingRegistration) (string, error) {
	now := time.Now()
	claims := activationClaims{
		Name:     pending.Name,
		Email:    pending.Email,
		Password: pending.Password,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{audienceActivation},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccountActivationExpiry)),
		},
	}
	token, err := utils.SignClaims(claims, s.cfg.AccountActivationSecret)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign activation token")
		return "", apperrors.NewInternalServerError(apperrors.GenericMessage)
	}
	return token, nil
}

func (s *tokenService) VerifyActivationToken(ctx context.Context, token string) (*domain.PendingRegistration, error) {
	claims := &activationClaims{}
	if err := utils.ParseClaims(token, s.cfg.AccountActivationSecret, audienceActivation, claims); err != nil {
		s.LogInfo(ctx, "Activation token rejected", slog.String("reason", err.Error()))
		return nil, apperrors.NewExpiredLinkError("Expired link. Signup again.")
	}
	if claims.Email == "" || claims.Password == "" {
		return nil, apperrors.NewExpiredLinkError("Expired link. Signup again.")
	}
	return &domain.PendingRegistration{Name: claims.Name, Email: claims.Email, Password: claims.Password}, nil
}

func (s *tokenService) IssueResetToken(ctx context.Context, userID string) (string, error) {
	token, _, err := utils.GenerateJWT(userID, s.cfg.ResetPasswordSecret, s.cfg.ResetPasswordExpiry, s.cfg.JWTIssuer, audienceReset)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign reset token", slog.String("user_id", userID))
		return "", apperrors.NewInternalServerError(apperrors.GenericMessage)
	}
	return token, nil
}

func (s *tokenService) VerifyResetToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.ResetPasswordSecret, audienceReset)
	if err != nil || claims.Subject == "" {
		if err != nil {
			s.LogInfo(ctx, "Reset token rejected", slog.String("reason", err.Error()))
		}
		return "", apperrors.NewExpiredLinkError("Expired link. Please, try again.")
	}
	return claims.Subject, nil
}

// GenerateAccessToken creates a new session token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, audienceSession)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token", slog.String("user_id", user.UserID))
		return "", time.Time{}, apperrors.NewInternalServerError(apperrors.GenericMessage)
	}
	return token, expiresAt, nil
}

func (s *tokenService) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, audienceSession)
	if err != nil {
		msg := "Invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "Token has expired"
		}
		return "", apperrors.NewUnauthorizedError(msg)
	}
	if claims.Subject == "" {
		return "", apperrors.NewUnauthorizedError("Invalid token claims")
	}
	return claims.Subject, nil
}
