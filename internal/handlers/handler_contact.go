package handlers

import (
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

func registerContactRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvcFacade) {
	h := &contactHandler{contactService: contactService}
	rg.POST("/contact", h.contact)
	rg.POST("/contact-blog-author", h.contactAuthor)
}

// contact godoc
// @Summary Send a message to the site owner
// @Tags contact
// @Accept json
// @Produce json
// @Param body body dto.ContactRequest true "Message"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /contact [post]
func (h *contactHandler) contact(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.contactService.Contact(c.Request.Context(), req.ToMessage()); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Message sent")
}

func (h *contactHandler) contactAuthor(c *gin.Context) {
	var req dto.ContactAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.contactService.ContactAuthor(c.Request.Context(), req.AuthorEmail, req.ToMessage()); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Message sent")
}
