package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"

	"github.com/dmitrymomot/portfolio/pkg/logger"
)

const kind = "portfolio:task"

type taskArgs struct {
	Task    string          `json:"task"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (taskArgs) Kind() string { return kind }

type worker struct {
	river.WorkerDefaults[taskArgs]
	registry *registry
	log      *slog.Logger
}

func (w *worker) Work(ctx context.Context, j *river.Job[taskArgs]) error {
	run, ok := w.registry.get(j.Args.Task)
	if !ok {
		return river.JobCancel(fmt.Errorf("%w: %s", ErrUnknownTask, j.Args.Task))
	}

	log := w.log.With(slog.String("task", j.Args.Task), slog.Int64("job_id", j.ID), slog.Int("attempt", j.Attempt))
	start := time.Now()
	if err := run(ctx, j.Args.Payload); err != nil {
		log.ErrorContext(ctx, "task failed", slog.Any("error", err))
		return err
	}
	log.DebugContext(ctx, "task done", slog.Duration("took", time.Since(start)))
	return nil
}

// Manager owns the River client, its worker and the task registry.
type Manager struct {
	pool     *pgxpool.Pool
	client   *river.Client[pgx.Tx]
	registry *registry
	log      *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewManager builds the River client. Jobs can be enqueued before Start.
func NewManager(pool *pgxpool.Pool, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := &config{registry: newRegistry(), log: logger.NewNope(), maxWorkers: 10}
	for _, opt := range opts {
		opt(cfg)
	}

	periodic := make([]*river.PeriodicJob, 0, len(cfg.periodic))
	for _, t := range cfg.periodic {
		sched, err := ParseSchedule(t.Schedule())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
		name := t.Name()
		periodic = append(periodic, river.NewPeriodicJob(sched, func() (river.JobArgs, *river.InsertOpts) {
			return taskArgs{Task: name}, nil
		}, nil))
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &worker{registry: cfg.registry, log: cfg.log})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:       map[string]river.QueueConfig{river.QueueDefault: {MaxWorkers: cfg.maxWorkers}},
		Workers:      workers,
		PeriodicJobs: periodic,
		Logger:       cfg.log,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	return &Manager{pool: pool, client: client, registry: cfg.registry, log: cfg.log}, nil
}

// Tasks lists registered task names.
func (m *Manager) Tasks() []string { return m.registry.names() }

// Enqueue inserts a job for the named task.
func (m *Manager) Enqueue(ctx context.Context, task string, payload any, opts ...EnqueueOption) error {
	args, err := m.args(task, payload)
	if err != nil {
		return err
	}
	if _, err := m.client.Insert(ctx, args, insertOpts(time.Now(), opts)); err != nil {
		return fmt.Errorf("job: enqueue %s: %w", task, err)
	}
	return nil
}

// EnqueueTx inserts a job inside tx.
func (m *Manager) EnqueueTx(ctx context.Context, tx pgx.Tx, task string, payload any, opts ...EnqueueOption) error {
	args, err := m.args(task, payload)
	if err != nil {
		return err
	}
	if _, err := m.client.InsertTx(ctx, tx, args, insertOpts(time.Now(), opts)); err != nil {
		return fmt.Errorf("job: enqueue %s: %w", task, err)
	}
	return nil
}

func (m *Manager) args(task string, payload any) (taskArgs, error) {
	if _, ok := m.registry.get(task); !ok {
		return taskArgs{}, fmt.Errorf("%w: %s", ErrUnknownTask, task)
	}
	args := taskArgs{Task: task}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return taskArgs{}, errors.Join(ErrInvalidPayload, err)
		}
		args.Payload = raw
	}
	return args, nil
}

// Start begins working jobs. It matches the app's startup hook signature.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return ErrAlreadyStarted
	}
	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start: %w", err)
	}
	m.started = true
	m.log.InfoContext(ctx, "job manager started", slog.Any("tasks", m.registry.names()))
	return nil
}

// Stop waits for running jobs to finish or ctx to expire. It matches the
// app's shutdown hook signature.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return ErrNotStarted
	}
	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop: %w", err)
	}
	m.started = false
	m.log.InfoContext(ctx, "job manager stopped")
	return nil
}

// Healthcheck fails while the manager is stopped or the pool is unreachable.
func (m *Manager) Healthcheck(ctx context.Context) error {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()
	if !started {
		return errors.Join(ErrHealthcheckFailed, ErrNotStarted)
	}
	if err := m.pool.Ping(ctx); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

// Migrate creates or upgrades River's tables.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), &rivermigrate.Config{Logger: log})
	if err != nil {
		return fmt.Errorf("job: migrator: %w", err)
	}
	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return fmt.Errorf("job: migrate: %w", err)
	}
	log.InfoContext(ctx, "job queue schema is up to date", slog.Int("applied", len(res.Versions)))
	return nil
}
