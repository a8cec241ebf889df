package dto

import "github.com/SscSPs/blog_backend/internal/core/domain"

// ListBlogsRequest pages the home listing. Zero values fall back to the service defaults.
type ListBlogsRequest struct {
	Limit int `json:"limit" binding:"gte=0,lte=100"`
	Skip  int `json:"skip" binding:"gte=0"`
}

// TermRef is a category or tag as referenced by the client.
type TermRef struct {
	ID string `json:"_id" binding:"required"`
}

// RelatedPost is the blog whose neighbours are requested.
type RelatedPost struct {
	ID         string    `json:"_id" binding:"required"`
	Categories []TermRef `json:"categories" binding:"dive"`
}

type RelatedBlogsRequest struct {
	Post  RelatedPost `json:"post"`
	Limit int         `json:"limit" binding:"gte=0,lte=20"`
}

// CategoryIDs flattens the referenced categories.
func (r RelatedBlogsRequest) CategoryIDs() []string {
	ids := make([]string, len(r.Post.Categories))
	for i, c := range r.Post.Categories {
		ids[i] = c.ID
	}
	return ids
}

type BlogCountResponse struct {
	Size int64 `json:"size"`
}

// Multipart fields of a blog create or update. Categories and tags are comma separated ids.
const (
	FormTitle      = "title"
	FormBody       = "body"
	FormCategories = "categories"
	FormTags       = "tags"
	FormPhoto      = "photo"
)

// ListingResponse aliases the home listing so handlers only speak dto.
type ListingResponse = domain.BlogListing
