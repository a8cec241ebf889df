package services

import (
	"context"

	"github.com/SscSPs/blog_backend/internal/core/domain"
)

// TaxonomySvcFacade manages one kind of term.
type TaxonomySvcFacade interface {
	Kind() domain.TaxonomyKind
	CreateTerm(ctx context.Context, name string) (*domain.Term, error)
	ListTerms(ctx context.Context) ([]domain.Term, error)
	GetTerm(ctx context.Context, slug string, skip, limit int) (*domain.TermWithBlogs, error)
	DeleteTerm(ctx context.Context, slug string) error
}
