package repositories

import (
	"context"

	"github.com/SscSPs/blog_backend/internal/core/domain"
)

// BlogReader defines read operations for blogs
type BlogReader interface {
	// FindBlogBySlug returns a blog with body, author, categories and tags.
	FindBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error)

	// ListBlogs returns blogs matching filter without their body, most recently updated first.
	ListBlogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error)
}

// BlogWriter defines write operations for blogs
type BlogWriter interface {
	// SaveBlog inserts a blog and its category and tag links atomically.
	SaveBlog(ctx context.Context, blog domain.Blog) error

	// UpdateBlog rewrites the content columns and replaces the category and tag links.
	UpdateBlog(ctx context.Context, blog domain.Blog) error

	// DeleteBlogBySlug removes a blog and its links.
	DeleteBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error)
}

// BlogCounter defines aggregate queries over blogs
type BlogCounter interface {
	CountBlogs(ctx context.Context) (int64, error)
	CountDistinctAuthors(ctx context.Context) (int64, error)
	CountFeaturedBlogs(ctx context.Context) (int64, error)
}

// BlogRepositoryFacade combines all blog-related repository interfaces
type BlogRepositoryFacade interface {
	BlogReader
	BlogWriter
	BlogCounter
}
