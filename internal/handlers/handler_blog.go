package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/dto"
	"github.com/SscSPs/blog_backend/internal/middleware"
	"github.com/SscSPs/blog_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// blogHandler handles HTTP requests related to blogs.
type blogHandler struct {
	blogService portssvc.BlogSvcFacade
}

func newBlogHandler(bs portssvc.BlogSvcFacade) *blogHandler {
	return &blogHandler{blogService: bs}
}

// blogGates are the middleware chains guarding blog writes.
type blogGates struct {
	admin  []gin.HandlerFunc
	author []gin.HandlerFunc
	owner  gin.HandlerFunc
}

// registerBlogRoutes registers public reads, admin writes and the author's own writes.
func registerBlogRoutes(rg *gin.RouterGroup, blogService portssvc.BlogSvcFacade, gates blogGates) {
	h := newBlogHandler(blogService)

	rg.GET("/blogs", h.listBlogs)
	rg.POST("/blogs-categories-tags", h.listBlogsWithTaxonomies)
	rg.GET("/blogs/size", h.countBlogs)
	rg.GET("/blogs/search", h.searchBlogs)
	rg.POST("/blogs/related", h.listRelated)
	rg.GET("/featured", h.listFeatured)
	rg.GET("/blog/:slug", h.getBlog)
	rg.GET("/blog/photo/:slug", h.getPhoto)
	rg.GET("/author-of-the-month", h.authorOfTheMonth)
	rg.GET("/auther-of-the-month", h.authorOfTheMonth) // legacy spelling kept for existing clients
	rg.GET("/statistics", h.statistics)
	rg.GET("/users/:username/blogs", h.listByUser)

	admin := rg.Group("", gates.admin...)
	{
		admin.POST("/blog", h.createBlog)
		admin.PUT("/blog/:slug", h.updateBlog)
		admin.DELETE("/blog/:slug", h.deleteBlog)
	}

	author := rg.Group("/user", gates.author...)
	{
		author.POST("/blog", h.createBlog)
		author.PUT("/blog/:slug", gates.owner, h.updateBlog)
		author.DELETE("/blog/:slug", gates.owner, h.deleteBlog)
	}
}

// blogInputFromForm reads the multipart blog form. Absent fields stay nil.
func blogInputFromForm(c *gin.Context) (domain.BlogInput, error) {
	var in domain.BlogInput
	if v, ok := c.GetPostForm(dto.FormTitle); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm(dto.FormBody); ok {
		in.Body = &v
	}
	if v, ok := c.GetPostForm(dto.FormCategories); ok {
		in.CategoryIDs = utils.SplitCSV(v)
	}
	if v, ok := c.GetPostForm(dto.FormTags); ok {
		in.TagIDs = utils.SplitCSV(v)
	}
	photo, err := readPhoto(c, dto.FormPhoto)
	if err != nil {
		return in, err
	}
	in.Photo = photo
	return in, nil
}

// createBlog godoc
// @Summary Publish a blog
// @Description Multipart form. The slug is derived from the title and never changes afterwards.
// @Tags blogs
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title, at most 160 characters"
// @Param body formData string true "HTML body, at least 200 characters"
// @Param categories formData string true "Comma separated category ids"
// @Param tags formData string true "Comma separated tag ids"
// @Param photo formData file false "Cover photo, at most 1mb"
// @Success 200 {object} domain.Blog
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Slug already exists"
// @Security BearerAuth
// @Router /blog [post]
func (h *blogHandler) createBlog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return
	}
	in, err := blogInputFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	blog, err := h.blogService.CreateBlog(c.Request.Context(), profile.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Blog published", slog.String("slug", blog.Slug))
	c.JSON(http.StatusOK, blog)
}

// updateBlog godoc
// @Summary Update a blog
// @Description Multipart form. Omitted fields are left unchanged; the photo may be up to 10mb.
// @Tags blogs
// @Accept mpfd
// @Produce json
// @Param slug path string true "Blog slug"
// @Success 200 {object} domain.Blog
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /blog/{slug} [put]
func (h *blogHandler) updateBlog(c *gin.Context) {
	in, err := blogInputFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	blog, err := h.blogService.UpdateBlog(c.Request.Context(), c.Param("slug"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (h *blogHandler) deleteBlog(c *gin.Context) {
	if err := h.blogService.DeleteBlog(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Blog deleted successfully")
}

// getBlog godoc
// @Summary Get a blog by slug
// @Tags blogs
// @Produce json
// @Param slug path string true "Blog slug"
// @Success 200 {object} domain.Blog
// @Failure 404 {object} dto.ErrorResponse
// @Router /blog/{slug} [get]
func (h *blogHandler) getBlog(c *gin.Context) {
	blog, err := h.blogService.GetBlog(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (h *blogHandler) getPhoto(c *gin.Context) {
	photo, err := h.blogService.GetBlogPhoto(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	writePhoto(c, photo)
}

func (h *blogHandler) listBlogs(c *gin.Context) {
	blogs, err := h.blogService.ListBlogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// listBlogsWithTaxonomies godoc
// @Summary Home page listing
// @Description A page of blogs plus every category and tag.
// @Tags blogs
// @Accept json
// @Produce json
// @Param body body dto.ListBlogsRequest false "Paging, defaults to limit 10 skip 0"
// @Success 200 {object} dto.ListingResponse
// @Router /blogs-categories-tags [post]
func (h *blogHandler) listBlogsWithTaxonomies(c *gin.Context) {
	var req dto.ListBlogsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	listing, err := h.blogService.ListBlogsWithTaxonomies(c.Request.Context(), req.Limit, req.Skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *blogHandler) countBlogs(c *gin.Context) {
	n, err := h.blogService.CountBlogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BlogCountResponse{Size: n})
}

func (h *blogHandler) listFeatured(c *gin.Context) {
	blogs, err := h.blogService.ListFeatured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (h *blogHandler) listRelated(c *gin.Context) {
	var req dto.RelatedBlogsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	blogs, err := h.blogService.ListRelated(c.Request.Context(), req.Post.ID, req.CategoryIDs(), req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

// searchBlogs godoc
// @Summary Search blogs by title or body
// @Tags blogs
// @Produce json
// @Param search query string true "Text to look for, case insensitive"
// @Success 200 {array} domain.Blog
// @Router /blogs/search [get]
func (h *blogHandler) searchBlogs(c *gin.Context) {
	blogs, err := h.blogService.SearchBlogs(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (h *blogHandler) listByUser(c *gin.Context) {
	blogs, err := h.blogService.ListBlogsByUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (h *blogHandler) authorOfTheMonth(c *gin.Context) {
	authors, err := h.blogService.AuthorOfTheMonth(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

// statistics godoc
// @Summary Site-wide counters
// @Tags blogs
// @Produce json
// @Success 200 {object} domain.Statistics
// @Router /statistics [get]
func (h *blogHandler) statistics(c *gin.Context) {
	stats, err := h.blogService.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
