// Package notify renders and sends the transactional emails of the shop.
// Every send here is best-effort from the caller's point of view: order
// placement and registration succeed whether or not mail goes out.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"time"

	"github.com/wijvancees/fotobestel/internal/domain"
	"github.com/wijvancees/fotobestel/internal/mailer"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Notifier struct {
	mailer     mailer.Mailer
	adminEmail string
	baseURL    string
	templates  *template.Template
	logger     *slog.Logger
}

func New(m mailer.Mailer, adminEmail, baseURL string, logger *slog.Logger) (*Notifier, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}
	return &Notifier{
		mailer:     m,
		adminEmail: adminEmail,
		baseURL:    baseURL,
		templates:  tmpl,
		logger:     logger,
	}, nil
}

type orderMailData struct {
	OrderNumber   string
	CreatedAt     time.Time
	TotalItems    int
	CustomerName  string
	CustomerEmail string
	Items         []domain.OrderItem
	Resent        bool
}

// OrderPlaced sends the admin notification and the customer confirmation for
// a freshly placed order. Both must succeed for a nil return.
func (n *Notifier) OrderPlaced(ctx context.Context, order *domain.Order) error {
	return n.sendOrderPair(ctx, order, false)
}

// OrderResent re-sends both order emails with resent markers.
func (n *Notifier) OrderResent(ctx context.Context, order *domain.Order) error {
	return n.sendOrderPair(ctx, order, true)
}

func (n *Notifier) sendOrderPair(ctx context.Context, order *domain.Order, resent bool) error {
	if n.adminEmail == "" {
		return fmt.Errorf("admin notification email not configured")
	}

	data := orderMailData{
		OrderNumber:   order.OrderNumber,
		CreatedAt:     order.CreatedAt,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Items:         order.Items,
		Resent:        resent,
	}
	for _, item := range order.Items {
		data.TotalItems += item.Quantity
	}

	adminSubject := fmt.Sprintf("New photo order: %s", order.OrderNumber)
	customerSubject := fmt.Sprintf("Order confirmation: %s", order.OrderNumber)
	if resent {
		adminSubject = fmt.Sprintf("[RESENT] Photo order: %s", order.OrderNumber)
		customerSubject = fmt.Sprintf("[REMINDER] Order confirmation: %s", order.OrderNumber)
	}

	if err := n.send(ctx, n.adminEmail, adminSubject, "order_admin.html", data); err != nil {
		return err
	}
	return n.send(ctx, order.CustomerEmail, customerSubject, "order_customer.html", data)
}

func (n *Notifier) Welcome(ctx context.Context, user *domain.User) error {
	return n.send(ctx, user.Email, "Welcome to Foto Bestellen!", "welcome.html",
		struct{ Name string }{Name: user.Name})
}

// PasswordReset mails the single-use reset link.
func (n *Notifier) PasswordReset(ctx context.Context, user *domain.User, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", n.baseURL, url.QueryEscape(token))
	return n.send(ctx, user.Email, "Reset your password", "password_reset.html",
		struct{ Name, ResetURL string }{Name: user.Name, ResetURL: resetURL})
}

func (n *Notifier) send(ctx context.Context, to, subject, tmplName string, data any) error {
	var body bytes.Buffer
	if err := n.templates.ExecuteTemplate(&body, tmplName, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", tmplName, err)
	}

	if err := n.mailer.Send(ctx, mailer.Message{To: to, Subject: subject, HTML: body.String()}); err != nil {
		return err
	}
	n.logger.Debug("mail sent", "to", to, "subject", subject)
	return nil
}
