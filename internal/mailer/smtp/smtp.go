// Package smtp sends mail through a plain SMTP relay without auth, which is
// what a local MailHog/Mailpit development setup expects.
package smtp

import (
	"context"
	"fmt"
	netsmtp "net/smtp"

	"github.com/wijvancees/fotobestel/internal/mailer"
)

type Mailer struct {
	addr string
	from string
}

func New(host, port, from string) *Mailer {
	return &Mailer{addr: host + ":" + port, from: from}
}

func (m *Mailer) Send(_ context.Context, msg mailer.Message) error {
	body := "From: " + m.from + "\r\n" +
		"To: " + msg.To + "\r\n" +
		"Subject: " + msg.Subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n" +
		msg.HTML

	if err := netsmtp.SendMail(m.addr, nil, m.from, []string{msg.To}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}
	return nil
}
