package mailer

import (
	"context"
	"log/slog"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends a single transactional email. Implementations do not retry;
// callers decide whether a failure matters.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer drops mail on the floor, logging what would have been sent. Used
// when MAIL_BACKEND=off (local development without a mail provider).
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.Logger.Info("mail suppressed (backend off)", "to", msg.To, "subject", msg.Subject)
	return nil
}
