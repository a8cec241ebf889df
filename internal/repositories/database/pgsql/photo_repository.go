package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/blog_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	"github.com/SscSPs/blog_backend/internal/models"
)

const photosTable = "photos"

// PgxPhotoRepository keeps image blobs in a bytea column.
type PgxPhotoRepository struct {
	BaseRepository
}

func NewPgxPhotoRepository(db PgxPool) *PgxPhotoRepository {
	return &PgxPhotoRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PhotoRepositoryFacade = (*PgxPhotoRepository)(nil)

func (r *PgxPhotoRepository) PutPhoto(ctx context.Context, owner domain.PhotoOwner, ownerID string, photo domain.Photo) error {
	query := `
        INSERT INTO photos (owner_kind, owner_id, content_type, data, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (owner_kind, owner_id) DO UPDATE SET
            content_type = EXCLUDED.content_type,
            data = EXCLUDED.data,
            updated_at = EXCLUDED.updated_at;
    `
	_, err := r.Pool.Exec(ctx, query, string(owner), ownerID, photo.ContentType, photo.Data, time.Now().UTC())
	return mapError(err, photosTable, "failed to store photo")
}

func (r *PgxPhotoRepository) GetPhoto(ctx context.Context, owner domain.PhotoOwner, ownerID string) (*domain.Photo, error) {
	var m models.Photo
	err := r.Pool.QueryRow(ctx,
		`SELECT content_type, data FROM photos WHERE owner_kind = $1 AND owner_id = $2;`,
		string(owner), ownerID,
	).Scan(&m.ContentType, &m.Data)
	if err != nil {
		return nil, mapError(err, photosTable, "get photo")
	}
	return &domain.Photo{Data: m.Data, ContentType: m.ContentType}, nil
}

func (r *PgxPhotoRepository) DeletePhoto(ctx context.Context, owner domain.PhotoOwner, ownerID string) error {
	_, err := r.Pool.Exec(ctx, `DELETE FROM photos WHERE owner_kind = $1 AND owner_id = $2;`, string(owner), ownerID)
	return mapError(err, photosTable, "delete photo")
}
