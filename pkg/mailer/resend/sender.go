// Package resend delivers mailer emails through the Resend API.
package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

// Config holds Resend credentials and the default sender.
type Config struct {
	APIKey    string `env:"API_KEY"`
	FromEmail string `env:"FROM_EMAIL" envDefault:"portfolio@localhost"`
	FromName  string `env:"FROM_NAME" envDefault:"Portfolio"`
}

// Sender implements mailer.Sender.
type Sender struct {
	client *resend.Client
	from   string
}

func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		from:   mailer.Address(cfg.FromName, cfg.FromEmail),
	}
}

func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := email.From
	if from == "" {
		from = s.from
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}
	for name, value := range email.Tags {
		req.Tags = append(req.Tags, resend.Tag{Name: name, Value: value})
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}
