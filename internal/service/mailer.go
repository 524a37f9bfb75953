package service

import (
	"context"
	"log/slog"
)

// Mailer delivers account mail. SMTP wiring lives behind this boundary so
// tests and local runs never need a mail server.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

// LogMailer is the development Mailer: it writes the reset link to the log
// instead of sending anything.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, link string) error {
	m.logger.InfoContext(ctx, "password reset link issued",
		slog.String("email", email),
		slog.String("link", link),
	)
	return nil
}
