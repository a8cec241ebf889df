package models

// Blog is a row of the blogs table joined with its author's summary columns.
type Blog struct {
	BlogID     string `db:"blog_id"`
	Title      string `db:"title"`
	Slug       string `db:"slug"`
	Body       string `db:"body"`
	Excerpt    string `db:"excerpt"`
	MTitle     string `db:"mtitle"`
	MDesc      string `db:"mdesc"`
	IsFeatured bool   `db:"is_featured"`
	AuthorID   string `db:"author_id"`
	AuditFields

	AuthorName     string `db:"author_name"`
	AuthorUsername string `db:"author_username"`
	AuthorProfile  string `db:"author_profile"`
	AuthorAbout    string `db:"author_about"`
}

// BlogTerm is a link row from blog_categories or blog_tags joined with the term.
type BlogTerm struct {
	BlogID string `db:"blog_id"`
	Term
}
