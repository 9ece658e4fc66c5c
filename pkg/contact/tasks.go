package contact

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
)

// MailTemplates holds the notification email and its layout.
//
//go:embed templates
var MailTemplates embed.FS

const (
	notifyTemplate = "templates/notification.md"
	// MailLayout is the layout MailTemplates expects.
	MailLayout = "templates/layouts/base.html"
)

// Querier is the subset of *pgxpool.Pool the tasks use.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Sender sends templated email. *mailer.Mailer satisfies it.
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Message is a stored submission.
type Message struct {
	Submission
	CreatedAt time.Time
}

// NotifyTask emails the owner a stored message.
type NotifyTask struct {
	db   Querier
	mail Sender
	to   string
	log  *slog.Logger
}

func NewNotifyTask(q Querier, mail Sender, to string, log *slog.Logger) *NotifyTask {
	if log == nil {
		log = logger.NewNope()
	}
	return &NotifyTask{db: q, mail: mail, to: to, log: log}
}

func (t *NotifyTask) Name() string { return TaskNotify }

const selectMessage = `SELECT name, email, message, language, created_at FROM contact_messages WHERE id = $1`

func (t *NotifyTask) Handle(ctx context.Context, p NotifyPayload) error {
	var m Message
	err := t.db.QueryRow(ctx, selectMessage, p.ID).Scan(&m.Name, &m.Email, &m.Message, &m.Language, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		t.log.WarnContext(ctx, "contact message gone before notification", slog.String("id", p.ID.String()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load message %s: %w", p.ID, err)
	}

	return t.mail.Send(ctx, mailer.Message{
		To:       t.to,
		ReplyTo:  m.Email,
		Template: notifyTemplate,
		Data:     m,
		Tags:     map[string]string{"category": "contact"},
	})
}

// PurgeTask deletes messages older than the retention window.
type PurgeTask struct {
	db        Querier
	retention time.Duration
	schedule  string
	log       *slog.Logger
	now       func() time.Time
}

// NewPurgeTask runs on schedule, a cron expression.
func NewPurgeTask(q Querier, retention time.Duration, schedule string, log *slog.Logger) *PurgeTask {
	if log == nil {
		log = logger.NewNope()
	}
	return &PurgeTask{db: q, retention: retention, schedule: schedule, log: log, now: time.Now}
}

func (t *PurgeTask) Name() string     { return "contact:purge" }
func (t *PurgeTask) Schedule() string { return t.schedule }

func (t *PurgeTask) Handle(ctx context.Context) error {
	cutoff := t.now().UTC().Add(-t.retention)
	tag, err := t.db.Exec(ctx, `DELETE FROM contact_messages WHERE created_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("purge contact messages: %w", err)
	}
	t.log.InfoContext(ctx, "contact messages purged",
		slog.Int64("deleted", tag.RowsAffected()),
		slog.Time("before", cutoff),
	)
	return nil
}
