package repositories

import (
	"context"

	"github.com/SscSPs/blog_backend/internal/core/domain"
)

// TaxonomyRepositoryFacade persists one kind of term (categories or tags).
type TaxonomyRepositoryFacade interface {
	Kind() domain.TaxonomyKind
	SaveTerm(ctx context.Context, term domain.Term) error
	FindTermBySlug(ctx context.Context, slug string) (*domain.Term, error)
	ListTerms(ctx context.Context) ([]domain.Term, error)
	DeleteTermBySlug(ctx context.Context, slug string) error
	CountTerms(ctx context.Context) (int64, error)
}
