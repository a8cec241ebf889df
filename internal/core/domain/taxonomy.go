package domain

// TaxonomyKind distinguishes categories from tags. Both share the same shape.
type TaxonomyKind string

const (
	TaxonomyCategory TaxonomyKind = "category"
	TaxonomyTag      TaxonomyKind = "tag"
)

// Term is a category or a tag.
type Term struct {
	TermID string `json:"_id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	AuditFields
}

// TermWithBlogs is a term and a page of blogs attached to it.
type TermWithBlogs struct {
	Term  Term
	Blogs []Blog
}
