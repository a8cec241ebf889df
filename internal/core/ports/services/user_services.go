package services

import (
	"context"

	"github.com/SscSPs/blog_backend/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetPublicProfile returns a user and up to ten of their blogs.
	GetPublicProfile(ctx context.Context, username string) (*domain.User, []domain.Blog, error)

	// GetProfilePhoto returns the user's photo.
	GetProfilePhoto(ctx context.Context, userID string) (*domain.Photo, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// UpdateProfile applies the whitelisted profile fields.
	UpdateProfile(ctx context.Context, userID string, update domain.UpdateProfile) (*domain.User, error)

	// PromoteAdmin grants the admin role. Only reachable from the CLI.
	PromoteAdmin(ctx context.Context, email string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
