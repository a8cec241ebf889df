// Package google verifies Google ID tokens and exchanges OAuth authorization codes.
package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/SscSPs/blog_backend/internal/core/ports/gateways"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// ErrNotConfigured is returned when no client id is set.
var ErrNotConfigured = errors.New("google client ID is not configured")

// ErrNoIDToken is returned when the token endpoint response lacks an id_token.
var ErrNoIDToken = errors.New("id_token missing from google token response")

type validateFunc func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

type exchanger interface {
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// Verifier implements gateways.IdentityVerifier against Google.
type Verifier struct {
	clientID string
	validate validateFunc
	oauth    exchanger
}

var _ gateways.IdentityVerifier = (*Verifier)(nil)

func NewVerifier(clientID, clientSecret, redirectURL string) *Verifier {
	return &Verifier{
		clientID: clientID,
		validate: idtoken.Validate,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     googleoauth.Endpoint,
		},
	}
}

// VerifyIDToken validates idToken for this client and extracts the identity claims.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*domain.GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, ErrNotConfigured
	}
	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return identityFromClaims(payload), nil
}

func identityFromClaims(p *idtoken.Payload) *domain.GoogleIdentity {
	id := &domain.GoogleIdentity{Subject: p.Subject}
	id.Email, _ = p.Claims["email"].(string)
	id.Name, _ = p.Claims["name"].(string)
	id.TokenID, _ = p.Claims["jti"].(string)
	switch v := p.Claims["email_verified"].(type) {
	case bool:
		id.EmailVerified = v
	case string:
		id.EmailVerified = v == "true"
	}
	return id
}

// ExchangeCode trades an authorization code for the ID token in Google's token response.
func (v *Verifier) ExchangeCode(ctx context.Context, code string) (string, error) {
	if v.clientID == "" {
		return "", ErrNotConfigured
	}
	tok, err := v.oauth.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.ErrorCode == "invalid_grant" {
			return "", fmt.Errorf("%w: %v", gateways.ErrInvalidCode, err)
		}
		return "", fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", ErrNoIDToken
	}
	return idToken, nil
}
