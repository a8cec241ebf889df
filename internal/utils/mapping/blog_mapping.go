package mapping

import (
	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/SscSPs/blog_backend/internal/models"
)

// ToModelBlog converts a domain Blog to a model Blog. Author summary columns are read-only and left empty.
func ToModelBlog(d domain.Blog) models.Blog {
	return models.Blog{
		BlogID:      d.BlogID,
		Title:       d.Title,
		Slug:        d.Slug,
		Body:        d.Body,
		Excerpt:     d.Excerpt,
		MTitle:      d.MTitle,
		MDesc:       d.MDesc,
		IsFeatured:  d.Featured,
		AuthorID:    d.AuthorID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBlog converts a model Blog to a domain Blog, attaching the author summary when present.
func ToDomainBlog(m models.Blog) domain.Blog {
	d := domain.Blog{
		BlogID:      m.BlogID,
		Title:       m.Title,
		Slug:        m.Slug,
		Body:        m.Body,
		Excerpt:     m.Excerpt,
		MTitle:      m.MTitle,
		MDesc:       m.MDesc,
		Featured:    m.IsFeatured,
		AuthorID:    m.AuthorID,
		Categories:  []domain.Term{},
		Tags:        []domain.Term{},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.AuthorID != "" {
		d.Author = &domain.AuthorRef{
			UserID:   m.AuthorID,
			Name:     m.AuthorName,
			Username: m.AuthorUsername,
			Profile:  m.AuthorProfile,
			About:    m.AuthorAbout,
		}
	}
	return d
}
