package services

import "context"

// ContactMessage is a visitor's message.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// ContactSvcFacade relays visitor messages by email.
type ContactSvcFacade interface {
	Contact(ctx context.Context, msg ContactMessage) error
	ContactAuthor(ctx context.Context, authorEmail string, msg ContactMessage) error
}
