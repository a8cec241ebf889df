package pgsql

import (
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the PostgreSQL repositories. photos overrides the
// default bytea photo store when non-nil.
func NewRepositoryProvider(dbPool PgxPool, photos portsrepo.PhotoRepositoryFacade) portsrepo.RepositoryProvider {
	if photos == nil {
		photos = NewPgxPhotoRepository(dbPool)
	}
	return portsrepo.RepositoryProvider{
		UserRepo:     newPgxUserRepository(dbPool),
		BlogRepo:     newPgxBlogRepository(dbPool),
		CategoryRepo: newPgxTaxonomyRepository(dbPool, domain.TaxonomyCategory),
		TagRepo:      newPgxTaxonomyRepository(dbPool, domain.TaxonomyTag),
		PhotoRepo:    photos,
	}
}
