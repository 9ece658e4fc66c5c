package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/portfolio/pkg/db"
	"github.com/dmitrymomot/portfolio/pkg/job"
	"github.com/dmitrymomot/portfolio/pkg/logger"
)

// TaskNotify is the job that emails the site owner about a new message.
const TaskNotify = "contact:notify"

// TxEnqueuer enqueues a job inside a transaction. *job.Manager satisfies it.
type TxEnqueuer interface {
	EnqueueTx(ctx context.Context, tx pgx.Tx, task string, payload any, opts ...job.EnqueueOption) error
}

// NotifyPayload identifies the stored message to announce.
type NotifyPayload struct {
	ID uuid.UUID `json:"id"`
}

// Inbox stores submissions in the contact_messages table.
type Inbox struct {
	db    db.Beginner
	queue TxEnqueuer
	log   *slog.Logger
	now   func() time.Time
}

// InboxOption configures Inbox.
type InboxOption func(*Inbox)

func WithInboxLogger(l *slog.Logger) InboxOption {
	return func(i *Inbox) {
		if l != nil {
			i.log = l
		}
	}
}

// NewInbox stores messages through conn and enqueues notifications on queue.
// A nil queue stores without notifying.
func NewInbox(conn db.Beginner, queue TxEnqueuer, opts ...InboxOption) *Inbox {
	i := &Inbox{db: conn, queue: queue, log: logger.NewNope(), now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

const insertMessage = `INSERT INTO contact_messages (id, name, email, message, language, remote_addr, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (i *Inbox) Submit(ctx context.Context, s Submission) (State, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return State{}, errors.Join(ErrSubmitFailed, err)
	}

	err = db.WithTx(ctx, i.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertMessage,
			id, s.Name, s.Email, s.Message, s.Language, s.RemoteAddr, i.now().UTC(),
		); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		if i.queue == nil {
			return nil
		}
		return i.queue.EnqueueTx(ctx, tx, TaskNotify, NotifyPayload{ID: id}, job.MaxAttempts(5))
	})
	if err != nil {
		return State{}, errors.Join(ErrSubmitFailed, err)
	}

	i.log.InfoContext(ctx, "contact message stored", slog.String("id", id.String()))
	return State{Succeeded: true}, nil
}
