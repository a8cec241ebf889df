package dto

import "github.com/SscSPs/blog_backend/internal/core/domain"

type CreateTermRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListTermRequest pages the blogs shown with a term.
type ListTermRequest struct {
	Skip  int `form:"skip" binding:"gte=0"`
	Limit int `form:"limit" binding:"gte=0,lte=100"`
}

// ToTermResponse keys the term by its kind, as in {"category": {...}, "blogs": [...]}.
func ToTermResponse(kind domain.TaxonomyKind, t *domain.TermWithBlogs) map[string]any {
	return map[string]any{
		string(kind): t.Term,
		"blogs":      t.Blogs,
	}
}
