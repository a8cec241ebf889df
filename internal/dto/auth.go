package dto

import "github.com/SscSPs/blog_backend/internal/core/domain"

// PreSignupRequest starts a registration. Nothing is stored until the emailed link is used.
type PreSignupRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignupRequest redeems an activation token.
type SignupRequest struct {
	Token string `json:"token" binding:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries the token from the reset email and the new password.
type ResetPasswordRequest struct {
	ResetPasswordLink string `json:"resetPasswordLink" binding:"required"`
	NewPassword       string `json:"newPassword" binding:"required,min=6"`
}

type GoogleLoginRequest struct {
	TokenID string `json:"tokenId" binding:"required"`
}

// ExchangeCodeRequest carries an authorization code obtained by the client from Google.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// SessionResponse is returned by every successful login.
type SessionResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

func ToSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{Token: s.Token, User: s.User}
}

// MessageResponse is the body of operations that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
