package sender

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender mengirim email transaksional lewat SendGrid v3.
// Tanpa API key dia jadi no-op (lingkungan dev/test tanpa kredensial).
type SendGridSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewSendGridSender(apiKey, fromName, fromEmail string) *SendGridSender {
	s := &SendGridSender{fromName: fromName, fromEmail: fromEmail}
	if apiKey == "" {
		log.Printf("[WARN] SENDGRID_API_KEY kosong — email sender jalan sebagai no-op")
		return s
	}
	s.client = sendgrid.NewSendClient(apiKey)
	return s
}

func (s *SendGridSender) Send(ctx context.Context, to, subject, html string) error {
	if s.client == nil {
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", html)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
