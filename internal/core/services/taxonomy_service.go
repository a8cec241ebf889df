package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/utils"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

const (
	maxTermNameLength = 32
	defaultTermLimit  = 4
)

// taxonomyService serves categories or tags; which one is decided by the repository it wraps.
type taxonomyService struct {
	BaseService
	terms portsrepo.TaxonomyRepositoryFacade
	blogs portsrepo.BlogReader
	now   func() time.Time
}

func NewTaxonomyService(terms portsrepo.TaxonomyRepositoryFacade, blogs portsrepo.BlogReader) portssvc.TaxonomySvcFacade {
	return &taxonomyService{
		terms: terms,
		blogs: blogs,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *taxonomyService) Kind() domain.TaxonomyKind {
	return s.terms.Kind()
}

func (s *taxonomyService) notFound() error {
	return apperrors.NewNotFoundError(strings.ToUpper(string(s.Kind())[:1]) + string(s.Kind())[1:] + " not found")
}

func (s *taxonomyService) CreateTerm(ctx context.Context, name string) (*domain.Term, error) {
	name = strings.TrimSpace(name)
	err := validation.Validate(name,
		validation.Required.Error("Name is required"),
		validation.Length(0, maxTermNameLength).Error(fmt.Sprintf("Name must be at most %d characters", maxTermNameLength)),
	)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	slug := utils.Slugify(name)
	if slug == "" {
		return nil, apperrors.NewBadRequestError("Name must contain letters or digits")
	}

	term := domain.Term{TermID: uuid.NewString(), Name: name, Slug: slug}
	term.Touch(s.now())
	if err := s.terms.SaveTerm(ctx, term); err != nil {
		s.LogError(ctx, err, "Failed to save term", slog.String("kind", string(s.Kind())), slog.String("slug", slug))
		return nil, fmt.Errorf("failed to create %s: %w", s.Kind(), err)
	}
	return &term, nil
}

func (s *taxonomyService) ListTerms(ctx context.Context) ([]domain.Term, error) {
	terms, err := s.terms.ListTerms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.Kind(), err)
	}
	return terms, nil
}

// GetTerm returns the term and a page of its blogs.
func (s *taxonomyService) GetTerm(ctx context.Context, slug string, skip, limit int) (*domain.TermWithBlogs, error) {
	if limit <= 0 {
		limit = defaultTermLimit
	}
	if skip < 0 {
		skip = 0
	}
	term, err := s.terms.FindTermBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.notFound()
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.Kind(), err)
	}

	filter := domain.BlogFilter{Limit: limit, Offset: skip}
	if s.Kind() == domain.TaxonomyCategory {
		filter.CategoryID = term.TermID
	} else {
		filter.TagID = term.TermID
	}
	blogs, err := s.blogs.ListBlogs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs for %s: %w", s.Kind(), err)
	}
	return &domain.TermWithBlogs{Term: *term, Blogs: blogs}, nil
}

func (s *taxonomyService) DeleteTerm(ctx context.Context, slug string) error {
	if err := s.terms.DeleteTermBySlug(ctx, strings.ToLower(slug)); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.notFound()
		}
		return fmt.Errorf("failed to delete %s: %w", s.Kind(), err)
	}
	s.LogInfo(ctx, "Term deleted", slog.String("kind", string(s.Kind())), slog.String("slug", slug))
	return nil
}
