// Package gateways declares the outbound collaborators of the core: mail delivery
// and third-party identity verification.
package gateways

import (
	"context"
	"errors"

	"github.com/SscSPs/blog_backend/internal/core/domain"
)

// Mailer delivers one email. Delivery is best effort; callers decide how to surface failures.
type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

// IdentityVerifier validates identity tokens issued by an external provider.
type IdentityVerifier interface {
	// VerifyIDToken checks signature, audience and expiry of idToken.
	VerifyIDToken(ctx context.Context, idToken string) (*domain.GoogleIdentity, error)

	// ExchangeCode trades an authorization code for an ID token.
	ExchangeCode(ctx context.Context, code string) (string, error)
}

// ErrInvalidCode is returned by ExchangeCode when the provider rejects the code itself
// (used, expired or issued to another client).
var ErrInvalidCode = errors.New("authorization code rejected")
