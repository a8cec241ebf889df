// Package mail delivers outbound email through SendGrid, or only logs it when no API key is configured.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/SscSPs/blog_backend/internal/core/ports/gateways"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sender is the part of *sendgrid.Client used here.
type sender interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer sends mail through the SendGrid v3 API.
type SendGridMailer struct {
	client sender
}

var _ gateways.Mailer = (*SendGridMailer)(nil)

func NewSendGridMailer(apiKey string) *SendGridMailer {
	return &SendGridMailer{client: sendgrid.NewSendClient(apiKey)}
}

// New picks the SendGrid mailer when apiKey is set and the log mailer otherwise.
func New(apiKey string, logger *slog.Logger) gateways.Mailer {
	if apiKey == "" {
		return NewLogMailer(logger)
	}
	return NewSendGridMailer(apiKey)
}

func (m *SendGridMailer) Send(ctx context.Context, email domain.Email) error {
	msg := buildMessage(email)
	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func buildMessage(email domain.Email) *sgmail.SGMailV3 {
	msg := sgmail.NewV3Mail()
	msg.SetFrom(sgmail.NewEmail("", email.From))
	msg.Subject = email.Subject

	p := sgmail.NewPersonalization()
	for _, to := range email.To {
		p.AddTos(sgmail.NewEmail("", to))
	}
	msg.AddPersonalizations(p)

	if email.ReplyTo != "" {
		msg.SetReplyTo(sgmail.NewEmail("", email.ReplyTo))
	}
	// text/plain must precede text/html.
	if email.Text != "" {
		msg.AddContent(sgmail.NewContent("text/plain", email.Text))
	}
	msg.AddContent(sgmail.NewContent("text/html", email.HTML))
	return msg
}
