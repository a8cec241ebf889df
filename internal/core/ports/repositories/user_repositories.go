package repositories

import (
	"context"

	"github.com/SscSPs/blog_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail looks a user up by case-insensitive email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their public handle.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByResetLink returns the user whose stored reset link equals link exactly.
	FindUserByResetLink(ctx context.Context, link string) (*domain.User, error)

	// FindAuthorsOfTheMonth returns flagged users, most recently updated first.
	FindAuthorsOfTheMonth(ctx context.Context, limit int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Unique violations surface as apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser writes the mutable profile and credential columns of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// SetResetPasswordLink stores link on the user record.
	SetResetPasswordLink(ctx context.Context, userID string, link string) error

	// UpdateRole changes the role of the user with the given email.
	UpdateRole(ctx context.Context, email string, role domain.Role) error
}

// UserCounter defines aggregate queries over users
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
	CountAuthorsOfTheMonth(ctx context.Context) (int64, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserCounter
}
