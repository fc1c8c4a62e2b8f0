package resend

import (
	"context"
	"fmt"

	resendgo "github.com/resend/resend-go/v2"

	"github.com/wijvancees/fotobestel/internal/mailer"
)

type Mailer struct {
	client  *resendgo.Client
	from    string
	replyTo string
}

func New(apiKey, from, replyTo string) *Mailer {
	return &Mailer{
		client:  resendgo.NewClient(apiKey),
		from:    from,
		replyTo: replyTo,
	}
}

func (m *Mailer) Send(ctx context.Context, msg mailer.Message) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resendgo.SendEmailRequest{
		From:    m.from,
		ReplyTo: m.replyTo,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to send email via resend: %w", err)
	}
	return nil
}
