package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	"github.com/SscSPs/blog_backend/internal/models"
	"github.com/SscSPs/blog_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const blogsTable = "blogs"

type PgxBlogRepository struct {
	BaseRepository
}

func newPgxBlogRepository(db PgxPool) *PgxBlogRepository {
	return &PgxBlogRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.BlogRepositoryFacade = (*PgxBlogRepository)(nil)

// blogSelect returns the select list; the body is only loaded for single-blog reads.
func blogSelect(withBody bool) string {
	body := "''"
	if withBody {
		body = "b.body"
	}
	return `SELECT b.blog_id, b.title, b.slug, ` + body + `, b.excerpt, b.mtitle, b.mdesc, b.is_featured,
		b.author_id, b.created_at, b.updated_at, u.name, u.username, u.profile, u.about
		FROM blogs b JOIN users u ON u.user_id = b.author_id`
}

func scanBlog(row pgx.Row) (models.Blog, error) {
	var m models.Blog
	err := row.Scan(
		&m.BlogID,
		&m.Title,
		&m.Slug,
		&m.Body,
		&m.Excerpt,
		&m.MTitle,
		&m.MDesc,
		&m.IsFeatured,
		&m.AuthorID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&m.AuthorName,
		&m.AuthorUsername,
		&m.AuthorProfile,
		&m.AuthorAbout,
	)
	return m, err
}

// escapeLike makes s safe to embed in an ILIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// buildBlogListQuery turns a filter into SQL and its positional arguments.
func buildBlogListQuery(f domain.BlogFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.AuthorID != "" {
		where = append(where, "b.author_id = "+arg(f.AuthorID))
	}
	if f.CategoryID != "" {
		where = append(where, "EXISTS (SELECT 1 FROM blog_categories bc WHERE bc.blog_id = b.blog_id AND bc.term_id = "+arg(f.CategoryID)+")")
	}
	if f.TagID != "" {
		where = append(where, "EXISTS (SELECT 1 FROM blog_tags bt WHERE bt.blog_id = b.blog_id AND bt.term_id = "+arg(f.TagID)+")")
	}
	if len(f.AnyCategory) > 0 {
		where = append(where, "EXISTS (SELECT 1 FROM blog_categories bc WHERE bc.blog_id = b.blog_id AND bc.term_id = ANY("+arg(f.AnyCategory)+"))")
	}
	if f.ExcludeID != "" {
		where = append(where, "b.blog_id <> "+arg(f.ExcludeID))
	}
	if f.FeaturedOnly {
		where = append(where, "b.is_featured")
	}
	if f.Search != "" {
		p := arg("%" + escapeLike(f.Search) + "%")
		where = append(where, "(b.title ILIKE "+p+" OR b.body ILIKE "+p+")")
	}

	var sb strings.Builder
	sb.WriteString(blogSelect(false))
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY b.updated_at DESC")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(f.Limit))
	}
	if f.Offset > 0 {
		sb.WriteString(" OFFSET " + arg(f.Offset))
	}
	sb.WriteString(";")
	return sb.String(), args
}

func (r *PgxBlogRepository) FindBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	m, err := scanBlog(r.Pool.QueryRow(ctx, blogSelect(true)+` WHERE b.slug = $1;`, slug))
	if err != nil {
		return nil, mapError(err, blogsTable, "find blog by slug")
	}
	blogs := []domain.Blog{mapping.ToDomainBlog(m)}
	if err := r.attachTerms(ctx, blogs); err != nil {
		return nil, err
	}
	return &blogs[0], nil
}

func (r *PgxBlogRepository) ListBlogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
	query, args := buildBlogListQuery(filter)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, blogsTable, "list blogs")
	}
	defer rows.Close()

	blogs := []domain.Blog{}
	for rows.Next() {
		m, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		blogs = append(blogs, mapping.ToDomainBlog(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", rows.Err())
	}
	rows.Close()

	if err := r.attachTerms(ctx, blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// attachTerms loads categories and tags for blogs in two queries.
func (r *PgxBlogRepository) attachTerms(ctx context.Context, blogs []domain.Blog) error {
	if len(blogs) == 0 {
		return nil
	}
	ids := make([]string, len(blogs))
	index := make(map[string]int, len(blogs))
	for i, b := range blogs {
		ids[i] = b.BlogID
		index[b.BlogID] = i
	}

	for _, kind := range []domain.TaxonomyKind{domain.TaxonomyCategory, domain.TaxonomyTag} {
		tables := tablesByKind[kind]
		links, err := r.loadLinks(ctx, tables, ids)
		if err != nil {
			return err
		}
		for _, l := range links {
			i := index[l.BlogID]
			t := mapping.ToDomainTerm(l.Term)
			if kind == domain.TaxonomyCategory {
				blogs[i].Categories = append(blogs[i].Categories, t)
			} else {
				blogs[i].Tags = append(blogs[i].Tags, t)
			}
		}
	}
	return nil
}

func (r *PgxBlogRepository) loadLinks(ctx context.Context, tables taxonomyTables, blogIDs []string) ([]models.BlogTerm, error) {
	query := `SELECT l.blog_id, t.term_id, t.name, t.slug, t.created_at, t.updated_at
		FROM ` + tables.links + ` l JOIN ` + tables.terms + ` t ON t.term_id = l.term_id
		WHERE l.blog_id = ANY($1)
		ORDER BY t.name;`
	rows, err := r.Pool.Query(ctx, query, blogIDs)
	if err != nil {
		return nil, mapError(err, tables.links, "load "+tables.terms)
	}
	defer rows.Close()

	links := []models.BlogTerm{}
	for rows.Next() {
		var l models.BlogTerm
		if err := rows.Scan(&l.BlogID, &l.TermID, &l.Name, &l.Slug, &l.CreatedAt, &l.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s link: %w", tables.terms, err)
		}
		links = append(links, l)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating %s links: %w", tables.terms, rows.Err())
	}
	return links, nil
}

func (r *PgxBlogRepository) SaveBlog(ctx context.Context, blog domain.Blog) error {
	m := mapping.ToModelBlog(blog)
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO blogs (blog_id, title, slug, body, excerpt, mtitle, mdesc, is_featured, author_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
			m.BlogID, m.Title, m.Slug, m.Body, m.Excerpt, m.MTitle, m.MDesc, m.IsFeatured, m.AuthorID, m.CreatedAt, m.LastUpdatedAt,
		)
		if err != nil {
			return mapError(err, blogsTable, "failed to save blog")
		}
		return r.writeLinks(ctx, tx, blog)
	})
}

func (r *PgxBlogRepository) UpdateBlog(ctx context.Context, blog domain.Blog) error {
	m := mapping.ToModelBlog(blog)
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE blogs
			SET title = $1, body = $2, excerpt = $3, mtitle = $4, mdesc = $5, updated_at = $6
			WHERE blog_id = $7;`,
			m.Title, m.Body, m.Excerpt, m.MTitle, m.MDesc, m.LastUpdatedAt, m.BlogID,
		)
		if err != nil {
			return mapError(err, blogsTable, "failed to update blog")
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("blog not found: %w", apperrors.ErrNotFound)
		}
		for _, tables := range []taxonomyTables{tablesByKind[domain.TaxonomyCategory], tablesByKind[domain.TaxonomyTag]} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+tables.links+` WHERE blog_id = $1;`, m.BlogID); err != nil {
				return mapError(err, tables.links, "failed to clear "+tables.links)
			}
		}
		return r.writeLinks(ctx, tx, blog)
	})
}

func (r *PgxBlogRepository) writeLinks(ctx context.Context, tx pgx.Tx, blog domain.Blog) error {
	sets := []struct {
		tables taxonomyTables
		ids    []string
	}{
		{tablesByKind[domain.TaxonomyCategory], termIDs(blog.Categories)},
		{tablesByKind[domain.TaxonomyTag], termIDs(blog.Tags)},
	}
	for _, s := range sets {
		if len(s.ids) == 0 {
			continue
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO `+s.tables.links+` (blog_id, term_id) SELECT $1, unnest($2::text[]) ON CONFLICT DO NOTHING;`,
			blog.BlogID, s.ids)
		if err != nil {
			return mapError(err, s.tables.links, "failed to link "+s.tables.terms)
		}
	}
	return nil
}

func termIDs(terms []domain.Term) []string {
	ids := make([]string, len(terms))
	for i, t := range terms {
		ids[i] = t.TermID
	}
	return ids
}

func (r *PgxBlogRepository) DeleteBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	var id string
	err := r.Pool.QueryRow(ctx, `DELETE FROM blogs WHERE slug = $1 RETURNING blog_id;`, slug).Scan(&id)
	if err != nil {
		return nil, mapError(err, blogsTable, "delete blog")
	}
	return &domain.Blog{BlogID: id, Slug: slug}, nil
}

func (r *PgxBlogRepository) count(ctx context.Context, op, query string) (int64, error) {
	var n int64
	if err := r.Pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, mapError(err, blogsTable, op)
	}
	return n, nil
}

func (r *PgxBlogRepository) CountBlogs(ctx context.Context) (int64, error) {
	return r.count(ctx, "count blogs", `SELECT count(*) FROM blogs;`)
}

func (r *PgxBlogRepository) CountDistinctAuthors(ctx context.Context) (int64, error) {
	return r.count(ctx, "count authors", `SELECT count(DISTINCT author_id) FROM blogs;`)
}

func (r *PgxBlogRepository) CountFeaturedBlogs(ctx context.Context) (int64, error) {
	return r.count(ctx, "count featured blogs", `SELECT count(*) FROM blogs WHERE is_featured;`)
}
