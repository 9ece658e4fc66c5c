package mailer

import (
	"context"
	"fmt"
	"log/slog"
)

// Email is a rendered message ready for delivery.
type Email struct {
	To      []string
	From    string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	Tags    map[string]string
}

// Sender delivers rendered emails.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Address formats a display name and address as "Name <addr>".
func Address(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", name, addr)
}

// LogSender logs emails instead of sending them. It is used when no provider
// is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, email *Email) error {
	if s.Logger == nil {
		return nil
	}
	s.Logger.InfoContext(ctx, "email not sent, no provider configured",
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
		slog.String("reply_to", email.ReplyTo),
	)
	return nil
}
