package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	"github.com/SscSPs/blog_backend/internal/models"
	"github.com/SscSPs/blog_backend/internal/utils/mapping"
)

// taxonomyTables names the term table and the blog link table of a kind.
type taxonomyTables struct {
	terms string
	links string
}

var tablesByKind = map[domain.TaxonomyKind]taxonomyTables{
	domain.TaxonomyCategory: {terms: "categories", links: "blog_categories"},
	domain.TaxonomyTag:      {terms: "tags", links: "blog_tags"},
}

// PgxTaxonomyRepository stores categories or tags depending on kind.
type PgxTaxonomyRepository struct {
	BaseRepository
	kind   domain.TaxonomyKind
	tables taxonomyTables
}

func newPgxTaxonomyRepository(db PgxPool, kind domain.TaxonomyKind) *PgxTaxonomyRepository {
	tables, ok := tablesByKind[kind]
	if !ok {
		panic(fmt.Sprintf("unknown taxonomy kind %q", kind))
	}
	return &PgxTaxonomyRepository{BaseRepository: BaseRepository{Pool: db}, kind: kind, tables: tables}
}

var _ portsrepo.TaxonomyRepositoryFacade = (*PgxTaxonomyRepository)(nil)

func (r *PgxTaxonomyRepository) Kind() domain.TaxonomyKind {
	return r.kind
}

func (r *PgxTaxonomyRepository) SaveTerm(ctx context.Context, term domain.Term) error {
	m := mapping.ToModelTerm(term)
	query := `INSERT INTO ` + r.tables.terms + ` (term_id, name, slug, created_at, updated_at) VALUES ($1, $2, $3, $4, $5);`
	_, err := r.Pool.Exec(ctx, query, m.TermID, m.Name, m.Slug, m.CreatedAt, m.LastUpdatedAt)
	return mapError(err, r.tables.terms, "failed to save "+string(r.kind))
}

func (r *PgxTaxonomyRepository) FindTermBySlug(ctx context.Context, slug string) (*domain.Term, error) {
	query := `SELECT term_id, name, slug, created_at, updated_at FROM ` + r.tables.terms + ` WHERE slug = $1;`
	var m models.Term
	err := r.Pool.QueryRow(ctx, query, slug).Scan(&m.TermID, &m.Name, &m.Slug, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		return nil, mapError(err, r.tables.terms, "find "+string(r.kind))
	}
	t := mapping.ToDomainTerm(m)
	return &t, nil
}

func (r *PgxTaxonomyRepository) ListTerms(ctx context.Context) ([]domain.Term, error) {
	query := `SELECT term_id, name, slug, created_at, updated_at FROM ` + r.tables.terms + ` ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, mapError(err, r.tables.terms, "list "+r.tables.terms)
	}
	defer rows.Close()

	terms := []models.Term{}
	for rows.Next() {
		var m models.Term
		if err := rows.Scan(&m.TermID, &m.Name, &m.Slug, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.kind, err)
		}
		terms = append(terms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", r.kind, rows.Err())
	}
	return mapping.ToDomainTermSlice(terms), nil
}

// DeleteTermBySlug also drops the term's blog links through ON DELETE CASCADE.
func (r *PgxTaxonomyRepository) DeleteTermBySlug(ctx context.Context, slug string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM `+r.tables.terms+` WHERE slug = $1;`, slug)
	if err != nil {
		return mapError(err, r.tables.terms, "delete "+string(r.kind))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s not found: %w", r.kind, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTaxonomyRepository) CountTerms(ctx context.Context) (int64, error) {
	var n int64
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM `+r.tables.terms+`;`).Scan(&n); err != nil {
		return 0, mapError(err, r.tables.terms, "count "+r.tables.terms)
	}
	return n, nil
}
