package mailer

import (
	"context"
	"errors"
)

// Config holds mailer settings.
type Config struct {
	FallbackSubject string `env:"FALLBACK_SUBJECT" envDefault:"Notification"`
}

// Message describes a templated email.
type Message struct {
	To       string
	ReplyTo  string
	Template string
	Data     any
	Subject  string
	Tags     map[string]string
}

// Mailer renders templates and delivers them through a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	cfg      Config
}

func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, cfg: cfg}
}

// Send renders msg.Template and sends it to msg.To.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	out, err := m.renderer.Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	subject := msg.Subject
	if subject == "" {
		subject = out.Subject
	}
	if subject == "" {
		subject = m.cfg.FallbackSubject
	}

	if err := m.sender.Send(ctx, &Email{
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: subject,
		HTML:    out.HTML,
		Text:    out.Text,
		Tags:    msg.Tags,
	}); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
