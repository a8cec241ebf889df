package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/SscSPs/blog_backend/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/platform/config"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const minContactMessageLength = 20

type contactService struct {
	BaseService
	cfg    *config.Config
	mailer gateways.Mailer
}

func NewContactService(cfg *config.Config, mailer gateways.Mailer) portssvc.ContactSvcFacade {
	return &contactService{cfg: cfg, mailer: mailer}
}

func validateContact(msg portssvc.ContactMessage) error {
	return validation.Errors{
		"name":    validation.Validate(strings.TrimSpace(msg.Name), validation.Required.Error("Name is required")),
		"email":   validation.Validate(msg.Email, validation.Required.Error("Must be a valid email address"), is.Email.Error("Must be a valid email address")),
		"message": validation.Validate(msg.Message, validation.Required.Error("Message must be at least 20 characters long"), validation.Length(minContactMessageLength, 0).Error("Message must be at least 20 characters long")),
	}.Filter()
}

// firstMessage picks one message in a fixed field order so responses are deterministic.
func firstMessage(err error) string {
	if errs, ok := err.(validation.Errors); ok {
		for _, field := range []string{"name", "email", "message"} {
			if e, ok := errs[field]; ok && e != nil {
				return e.Error()
			}
		}
	}
	return err.Error()
}

func (s *contactService) Contact(ctx context.Context, msg portssvc.ContactMessage) error {
	if err := validateContact(msg); err != nil {
		return apperrors.NewBadRequestError(firstMessage(err))
	}
	return s.relay(ctx, []string{s.cfg.EmailTo}, "Contact form - "+s.cfg.AppName, "Email received from contact form", msg)
}

func (s *contactService) ContactAuthor(ctx context.Context, authorEmail string, msg portssvc.ContactMessage) error {
	if err := validateContact(msg); err != nil {
		return apperrors.NewBadRequestError(firstMessage(err))
	}
	if err := validation.Validate(authorEmail, validation.Required, is.Email); err != nil {
		return apperrors.NewBadRequestError("Author email is invalid")
	}
	to := []string{authorEmail}
	if s.cfg.EmailTo != "" && !strings.EqualFold(s.cfg.EmailTo, authorEmail) {
		to = append(to, s.cfg.EmailTo)
	}
	return s.relay(ctx, to, "Message from "+s.cfg.AppName, "Message received from", msg)
}

// relay sends the visitor's message. The visitor goes to Reply-To; From stays our own address.
func (s *contactService) relay(ctx context.Context, to []string, subject, heading string, msg portssvc.ContactMessage) error {
	html, err := renderEmail("contact", contactEmailData{
		Heading:   heading,
		Name:      strings.TrimSpace(msg.Name),
		Email:     msg.Email,
		Message:   msg.Message,
		ClientURL: s.cfg.ClientURL,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to render contact email")
		return apperrors.NewInternalServerError(apperrors.GenericMessage)
	}
	err = s.mailer.Send(ctx, domain.Email{
		To:      to,
		From:    s.cfg.EmailFrom,
		ReplyTo: msg.Email,
		Subject: subject,
		HTML:    html,
		Text:    "Sender name: " + msg.Name + "\nSender email: " + msg.Email + "\nSender message: " + msg.Message,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to relay contact message", slog.Int("recipients", len(to)))
		return apperrors.NewBadGatewayError("Message could not be sent. Please try again later.", err)
	}
	return nil
}
