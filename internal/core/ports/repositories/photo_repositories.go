package repositories

import (
	"context"

	"github.com/SscSPs/blog_backend/internal/core/domain"
)

// PhotoRepositoryFacade stores image blobs keyed by owner kind and owner id.
type PhotoRepositoryFacade interface {
	// PutPhoto replaces any existing photo for the owner.
	PutPhoto(ctx context.Context, owner domain.PhotoOwner, ownerID string, photo domain.Photo) error

	// GetPhoto returns apperrors.ErrNotFound when the owner has no photo.
	GetPhoto(ctx context.Context, owner domain.PhotoOwner, ownerID string) (*domain.Photo, error)

	// DeletePhoto is a no-op when nothing is stored.
	DeletePhoto(ctx context.Context, owner domain.PhotoOwner, ownerID string) error
}
