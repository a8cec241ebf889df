package services

import (
	"context"
	"time"

	"github.com/SscSPs/blog_backend/internal/core/domain"
)

// TokenSvcFacade signs and verifies the three token kinds. Each kind has its own
// secret and audience so a token of one kind never verifies as another.
type TokenSvcFacade interface {
	// IssueActivationToken embeds a pending registration in a short-lived token.
	IssueActivationToken(ctx context.Context, pending domain.PendingRegistration) (string, error)
	// VerifyActivationToken fails with apperrors.ErrExpiredLink on any verification failure.
	VerifyActivationToken(ctx context.Context, token string) (*domain.PendingRegistration, error)

	// IssueResetToken returns a short-lived token naming userID.
	IssueResetToken(ctx context.Context, userID string) (string, error)
	// VerifyResetToken fails with apperrors.ErrExpiredLink on any verification failure.
	VerifyResetToken(ctx context.Context, token string) (string, error)

	// GenerateAccessToken creates a session token for user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAccessToken returns the user id carried by a session token.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}

// AccountLifecycleSvc drives registration and password reset.
type AccountLifecycleSvc interface {
	// RequestSignup emails an activation link. Nothing is persisted.
	RequestSignup(ctx context.Context, name, email, password string) error
	// CompleteSignup redeems an activation token and creates the user.
	CompleteSignup(ctx context.Context, token string) (*domain.User, error)
	// RequestPasswordReset stores a reset link on the user and emails it.
	RequestPasswordReset(ctx context.Context, email string) error
	// CompletePasswordReset sets a new password for the user holding token.
	CompletePasswordReset(ctx context.Context, token, newPassword string) error
}

// SessionSvc issues sessions.
type SessionSvc interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	GoogleLogin(ctx context.Context, idToken string) (*domain.Session, error)
	GoogleExchangeCode(ctx context.Context, code string) (*domain.Session, error)
}

// AuthSvcFacade combines account lifecycle and session issuance.
type AuthSvcFacade interface {
	AccountLifecycleSvc
	SessionSvc
}
