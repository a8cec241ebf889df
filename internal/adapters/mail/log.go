package mail

import (
	"context"
	"log/slog"

	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/SscSPs/blog_backend/internal/core/ports/gateways"
)

// LogMailer records outgoing mail instead of sending it. Bodies are not logged since they carry tokens.
type LogMailer struct {
	logger *slog.Logger
}

var _ gateways.Mailer = (*LogMailer)(nil)

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, email domain.Email) error {
	m.logger.InfoContext(ctx, "Email not sent, no mail provider configured",
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
	)
	return nil
}
