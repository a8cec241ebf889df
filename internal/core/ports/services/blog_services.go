package services

import (
	"context"

	"github.com/SscSPs/blog_backend/internal/core/domain"
)

// BlogReaderSvc defines read operations for blogs
type BlogReaderSvc interface {
	GetBlog(ctx context.Context, slug string) (*domain.Blog, error)
	GetBlogPhoto(ctx context.Context, slug string) (*domain.Photo, error)
	ListBlogs(ctx context.Context) ([]domain.Blog, error)
	ListBlogsWithTaxonomies(ctx context.Context, limit, skip int) (*domain.BlogListing, error)
	CountBlogs(ctx context.Context) (int64, error)
	ListFeatured(ctx context.Context) ([]domain.Blog, error)
	ListRelated(ctx context.Context, blogID string, categoryIDs []string, limit int) ([]domain.Blog, error)
	SearchBlogs(ctx context.Context, query string) ([]domain.Blog, error)
	ListBlogsByUser(ctx context.Context, username string) ([]domain.Blog, error)
}

// BlogWriterSvc defines write operations for blogs
type BlogWriterSvc interface {
	CreateBlog(ctx context.Context, authorID string, input domain.BlogInput) (*domain.Blog, error)
	UpdateBlog(ctx context.Context, slug string, input domain.BlogInput) (*domain.Blog, error)
	DeleteBlog(ctx context.Context, slug string) error
}

// SiteStatsSvc defines site-wide aggregates
type SiteStatsSvc interface {
	AuthorOfTheMonth(ctx context.Context) ([]domain.AuthorRef, error)
	Statistics(ctx context.Context) (*domain.Statistics, error)
}

// BlogSvcFacade combines all blog-related service interfaces
type BlogSvcFacade interface {
	BlogReaderSvc
	BlogWriterSvc
	SiteStatsSvc
}
