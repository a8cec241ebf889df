package dto

import portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"

// ContactRequest is a visitor message. Field rules live in the contact service.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r ContactRequest) ToMessage() portssvc.ContactMessage {
	return portssvc.ContactMessage{Name: r.Name, Email: r.Email, Message: r.Message}
}

// ContactAuthorRequest is a visitor message addressed to a blog's author.
type ContactAuthorRequest struct {
	ContactRequest
	AuthorEmail string `json:"authorEmail" binding:"required,email"`
}
