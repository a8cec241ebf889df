package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// taxonomyHandler serves one kind of term; categories and tags each get their own instance.
type taxonomyHandler struct {
	termService portssvc.TaxonomySvcFacade
}

// registerTaxonomyRoutes mounts /<kind>, /<kind>s and /<kind>/:slug. The read also answers POST for older clients.
// Writes go through admin.
func registerTaxonomyRoutes(rg *gin.RouterGroup, termService portssvc.TaxonomySvcFacade, plural string, admin ...gin.HandlerFunc) {
	h := &taxonomyHandler{termService: termService}
	single := "/" + string(termService.Kind())

	rg.GET("/"+plural, h.listTerms)
	rg.GET(single+"/:slug", h.getTerm)
	rg.POST(single+"/:slug", h.getTerm)

	writes := rg.Group(single, admin...)
	{
		writes.POST("", h.createTerm)
		writes.DELETE("/:slug", h.deleteTerm)
	}
}

// createTerm godoc
// @Summary Create a category or tag
// @Tags taxonomy
// @Accept json
// @Produce json
// @Param body body dto.CreateTermRequest true "Name, at most 32 characters"
// @Success 200 {object} domain.Term
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /category [post]
// @Router /tag [post]
func (h *taxonomyHandler) createTerm(c *gin.Context) {
	var req dto.CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	term, err := h.termService.CreateTerm(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, term)
}

func (h *taxonomyHandler) listTerms(c *gin.Context) {
	terms, err := h.termService.ListTerms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}

func (h *taxonomyHandler) getTerm(c *gin.Context) {
	var req dto.ListTermRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	term, err := h.termService.GetTerm(c.Request.Context(), c.Param("slug"), req.Skip, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTermResponse(h.termService.Kind(), term))
}

func (h *taxonomyHandler) deleteTerm(c *gin.Context) {
	if err := h.termService.DeleteTerm(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, string(h.termService.Kind())+" deleted successfully")
}
