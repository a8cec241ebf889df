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
	"github.com/SscSPs/blog_backend/internal/platform/config"
	"github.com/SscSPs/blog_backend/internal/utils"
	"github.com/SscSPs/blog_backend/internal/utils/mapping"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	maxTitleLength      = 160
	minBodyLength       = 200
	excerptLength       = 320
	metaDescLength      = 160
	createPhotoMaxBytes = 1 << 20
	updatePhotoMaxBytes = 10 << 20

	defaultListLimit    = 10
	featuredLimit       = 8
	defaultRelatedLimit = 3
)

type blogService struct {
	BaseService
	cfg        *config.Config
	blogs      portsrepo.BlogRepositoryFacade
	users      portsrepo.UserRepositoryFacade
	categories portsrepo.TaxonomyRepositoryFacade
	tags       portsrepo.TaxonomyRepositoryFacade
	photos     portsrepo.PhotoRepositoryFacade
	now        func() time.Time
}

func NewBlogService(cfg *config.Config, repos portsrepo.RepositoryProvider) portssvc.BlogSvcFacade {
	return &blogService{
		cfg:        cfg,
		blogs:      repos.BlogRepo,
		users:      repos.UserRepo,
		categories: repos.CategoryRepo,
		tags:       repos.TagRepo,
		photos:     repos.PhotoRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func photoSize(limit int, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		p, _ := value.(*domain.Photo)
		if p != nil && len(p.Data) > limit {
			return errors.New(message)
		}
		return nil
	})
}

// fieldCheck pairs a value with its rules; checks run in order so the first message wins.
type fieldCheck struct {
	value interface{}
	rules []validation.Rule
}

// validateBlogInput returns the first failing rule as a 400. On update, nil fields are skipped.
func validateBlogInput(in domain.BlogInput, creating bool) error {
	titleRules := []validation.Rule{validation.Length(0, maxTitleLength).Error("Title is too long")}
	bodyRules := []validation.Rule{validation.Length(minBodyLength, 0).Error("Content is too short")}
	maxPhoto, photoMsg := updatePhotoMaxBytes, "Image should be less than 10mb in size"
	if creating {
		titleRules = append([]validation.Rule{validation.Required.Error("Title is required")}, titleRules...)
		bodyRules = append([]validation.Rule{validation.Required.Error("Content is too short")}, bodyRules...)
		maxPhoto, photoMsg = createPhotoMaxBytes, "Image should be less than 1mb in size"
	} else {
		titleRules = append([]validation.Rule{validation.NilOrNotEmpty.Error("Title is required")}, titleRules...)
		bodyRules = append([]validation.Rule{validation.NilOrNotEmpty.Error("Content is too short")}, bodyRules...)
	}

	checks := []fieldCheck{
		{in.Title, titleRules},
		{in.Body, bodyRules},
		{in.Photo, []validation.Rule{photoSize(maxPhoto, photoMsg)}},
	}
	if creating {
		checks = append(checks,
			fieldCheck{in.CategoryIDs, []validation.Rule{validation.Required.Error("At least one category is required")}},
			fieldCheck{in.TagIDs, []validation.Rule{validation.Required.Error("At least one tag is required")}},
		)
	}
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return apperrors.NewBadRequestError(err.Error())
		}
	}
	return nil
}

// termRefs turns ids into unresolved terms, dropping duplicates.
func termRefs(ids []string) []domain.Term {
	seen := make(map[string]bool, len(ids))
	terms := make([]domain.Term, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		terms = append(terms, domain.Term{TermID: id})
	}
	return terms
}

// applyBody sets the body and everything derived from it.
func applyBody(blog *domain.Blog, body string) {
	blog.Body = body
	blog.Excerpt = utils.SmartTrim(utils.StripHTML(body), excerptLength, " ", " ...")
	blog.MDesc = utils.StripHTML(utils.Prefix(body, metaDescLength))
}

func (s *blogService) CreateBlog(ctx context.Context, authorID string, in domain.BlogInput) (*domain.Blog, error) {
	if err := validateBlogInput(in, true); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(*in.Title)
	slug := utils.Slugify(title)
	if slug == "" {
		return nil, apperrors.NewBadRequestError("Title must contain letters or digits")
	}

	blog := domain.Blog{
		BlogID:     uuid.NewString(),
		Title:      title,
		Slug:       slug,
		MTitle:     title + " | " + s.cfg.AppName,
		AuthorID:   authorID,
		Categories: termRefs(in.CategoryIDs),
		Tags:       termRefs(in.TagIDs),
	}
	applyBody(&blog, *in.Body)
	blog.Touch(s.now())

	if err := s.blogs.SaveBlog(ctx, blog); err != nil {
		s.LogError(ctx, err, "Failed to save blog", slog.String("slug", slug))
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	if in.Photo != nil {
		if err := s.photos.PutPhoto(ctx, domain.PhotoOwnerBlog, blog.BlogID, *in.Photo); err != nil {
			s.LogError(ctx, err, "Failed to store blog photo", slog.String("slug", slug))
			return nil, fmt.Errorf("failed to store blog photo: %w", err)
		}
	}
	s.LogInfo(ctx, "Blog created", slog.String("blog_id", blog.BlogID), slog.String("slug", slug))
	return s.GetBlog(ctx, slug)
}

// UpdateBlog never changes the slug, so links to the blog keep working after a title edit.
func (s *blogService) UpdateBlog(ctx context.Context, slug string, in domain.BlogInput) (*domain.Blog, error) {
	blog, err := s.GetBlog(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := validateBlogInput(in, false); err != nil {
		return nil, err
	}

	if in.Title != nil {
		blog.Title = strings.TrimSpace(*in.Title)
		blog.MTitle = blog.Title + " | " + s.cfg.AppName
	}
	if in.Body != nil {
		applyBody(blog, *in.Body)
	}
	if in.CategoryIDs != nil {
		blog.Categories = termRefs(in.CategoryIDs)
	}
	if in.TagIDs != nil {
		blog.Tags = termRefs(in.TagIDs)
	}
	blog.Touch(s.now())

	if err := s.blogs.UpdateBlog(ctx, *blog); err != nil {
		s.LogError(ctx, err, "Failed to update blog", slog.String("slug", slug))
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	if in.Photo != nil {
		if err := s.photos.PutPhoto(ctx, domain.PhotoOwnerBlog, blog.BlogID, *in.Photo); err != nil {
			return nil, fmt.Errorf("failed to store blog photo: %w", err)
		}
	}
	return s.GetBlog(ctx, slug)
}

func (s *blogService) DeleteBlog(ctx context.Context, slug string) error {
	deleted, err := s.blogs.DeleteBlogBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Blog not found")
		}
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if err := s.photos.DeletePhoto(ctx, domain.PhotoOwnerBlog, deleted.BlogID); err != nil {
		// The blog is gone; an orphaned photo is only wasted space.
		s.LogError(ctx, err, "Failed to delete blog photo", slog.String("blog_id", deleted.BlogID))
	}
	return nil
}

func (s *blogService) GetBlog(ctx context.Context, slug string) (*domain.Blog, error) {
	blog, err := s.blogs.FindBlogBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Blog not found")
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}

func (s *blogService) GetBlogPhoto(ctx context.Context, slug string) (*domain.Photo, error) {
	blog, err := s.GetBlog(ctx, slug)
	if err != nil {
		return nil, err
	}
	photo, err := s.photos.GetPhoto(ctx, domain.PhotoOwnerBlog, blog.BlogID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Photo not found")
		}
		return nil, fmt.Errorf("failed to get blog photo: %w", err)
	}
	return photo, nil
}

func (s *blogService) list(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
	blogs, err := s.blogs.ListBlogs(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list blogs")
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, nil
}

func (s *blogService) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	return s.list(ctx, domain.BlogFilter{})
}

func (s *blogService) ListBlogsWithTaxonomies(ctx context.Context, limit, skip int) (*domain.BlogListing, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}

	listing := &domain.BlogListing{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		listing.Blogs, err = s.list(gctx, domain.BlogFilter{Limit: limit, Offset: skip})
		return err
	})
	g.Go(func() (err error) {
		listing.Categories, err = s.categories.ListTerms(gctx)
		return err
	})
	g.Go(func() (err error) {
		listing.Tags, err = s.tags.ListTerms(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list blogs with taxonomies: %w", err)
	}
	listing.Size = len(listing.Blogs)
	return listing, nil
}

func (s *blogService) CountBlogs(ctx context.Context) (int64, error) {
	n, err := s.blogs.CountBlogs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count blogs: %w", err)
	}
	return n, nil
}

func (s *blogService) ListFeatured(ctx context.Context) ([]domain.Blog, error) {
	return s.list(ctx, domain.BlogFilter{FeaturedOnly: true, Limit: featuredLimit})
}

// ListRelated returns blogs sharing a category with blogID. No categories means no relations.
func (s *blogService) ListRelated(ctx context.Context, blogID string, categoryIDs []string, limit int) ([]domain.Blog, error) {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}
	if len(categoryIDs) == 0 {
		return []domain.Blog{}, nil
	}
	return s.list(ctx, domain.BlogFilter{AnyCategory: categoryIDs, ExcludeID: blogID, Limit: limit})
}

func (s *blogService) SearchBlogs(ctx context.Context, query string) ([]domain.Blog, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Blog{}, nil
	}
	return s.list(ctx, domain.BlogFilter{Search: query})
}

func (s *blogService) ListBlogsByUser(ctx context.Context, username string) ([]domain.Blog, error) {
	user, err := s.users.FindUserByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return s.list(ctx, domain.BlogFilter{AuthorID: user.UserID})
}

func (s *blogService) AuthorOfTheMonth(ctx context.Context) ([]domain.AuthorRef, error) {
	users, err := s.users.FindAuthorsOfTheMonth(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to find author of the month: %w", err)
	}
	refs := make([]domain.AuthorRef, len(users))
	for i, u := range users {
		refs[i] = mapping.ToAuthorRef(u)
	}
	return refs, nil
}

// Statistics runs the counts concurrently; the first failure cancels the rest.
func (s *blogService) Statistics(ctx context.Context) (*domain.Statistics, error) {
	stats := &domain.Statistics{}
	g, gctx := errgroup.WithContext(ctx)

	counts := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&stats.BlogsLength, s.blogs.CountBlogs},
		{&stats.AuthorsNumber, s.blogs.CountDistinctAuthors},
		{&stats.FeaturedBlogsCount, s.blogs.CountFeaturedBlogs},
		{&stats.TagsCount, s.tags.CountTerms},
		{&stats.CategoriesCount, s.categories.CountTerms},
		{&stats.UsersCount, s.users.CountUsers},
		{&stats.AuthorsOfTheMonthCount, s.users.CountAuthorsOfTheMonth},
	}
	for _, c := range counts {
		g.Go(func() error {
			n, err := c.count(gctx)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to compute statistics")
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return stats, nil
}
