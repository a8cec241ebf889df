package domain

// Blog is a published post. Slug is derived from Title at creation and never changes.
type Blog struct {
	BlogID     string     `json:"_id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Body       string     `json:"body,omitempty"`
	Excerpt    string     `json:"excerpt,omitempty"`
	MTitle     string     `json:"mtitle,omitempty"`
	MDesc      string     `json:"mdesc,omitempty"`
	Featured   bool       `json:"isFeatured"`
	AuthorID   string     `json:"-"`
	Author     *AuthorRef `json:"postedBy,omitempty"`
	Categories []Term     `json:"categories"`
	Tags       []Term     `json:"tags"`
	AuditFields
}

// CategoryIDs returns the ids of the attached categories.
func (b *Blog) CategoryIDs() []string {
	ids := make([]string, len(b.Categories))
	for i, c := range b.Categories {
		ids[i] = c.TermID
	}
	return ids
}

// BlogInput is the validated content of a create or update request.
// Nil pointers mean "leave unchanged" on update.
type BlogInput struct {
	Title       *string
	Body        *string
	CategoryIDs []string
	TagIDs      []string
	Photo       *Photo
}

// BlogListing is the combined payload of the home page listing.
type BlogListing struct {
	Blogs      []Blog `json:"blogs"`
	Categories []Term `json:"categories"`
	Tags       []Term `json:"tags"`
	Size       int    `json:"size"`
}

// PhotoOwner is the kind of entity a photo belongs to.
type PhotoOwner string

const (
	PhotoOwnerUser PhotoOwner = "users"
	PhotoOwnerBlog PhotoOwner = "blogs"
)

// Photo is an uploaded image.
type Photo struct {
	Data        []byte
	ContentType string
}

// BlogFilter narrows a blog listing. Zero values mean "no constraint".
type BlogFilter struct {
	AuthorID     string
	CategoryID   string
	TagID        string
	AnyCategory  []string
	ExcludeID    string
	FeaturedOnly bool
	Search       string
	Limit        int
	Offset       int
}

// Statistics are site-wide counters.
type Statistics struct {
	BlogsLength            int64 `json:"blogsLength"`
	AuthorsNumber          int64 `json:"authorsNumber"`
	TagsCount              int64 `json:"tagsCount"`
	CategoriesCount        int64 `json:"categoriesCount"`
	UsersCount             int64 `json:"usersCount"`
	AuthorsOfTheMonthCount int64 `json:"authorsOfTheMonthCount"`
	FeaturedBlogsCount     int64 `json:"featuredBlogsCount"`
}
