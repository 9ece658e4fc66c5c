package job

import (
	"log/slog"
	"time"

	"github.com/riverqueue/river"
)

type config struct {
	registry   *registry
	periodic   []PeriodicTask
	log        *slog.Logger
	maxWorkers int
}

// Option configures a Manager.
type Option func(*config)

// WithTask registers a typed task. Go cannot infer P from a concrete task
// type, so pass it explicitly: WithTask[Payload](t).
func WithTask[P any](t Task[P]) Option {
	return func(c *config) {
		c.registry.add(t.Name(), typed(t))
	}
}

// WithPeriodicTask registers a task that River enqueues on its cron schedule.
func WithPeriodicTask(t PeriodicTask) Option {
	return func(c *config) {
		c.registry.add(t.Name(), periodic(t))
		c.periodic = append(c.periodic, t)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMaxWorkers caps concurrent jobs on the default queue. The default is 10.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

type enqueueConfig struct {
	delay       time.Duration
	maxAttempts int
	uniqueFor   time.Duration
}

// EnqueueOption configures a single insert.
type EnqueueOption func(*enqueueConfig)

// In delays the job by d.
func In(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) { c.delay = d }
}

func MaxAttempts(n int) EnqueueOption {
	return func(c *enqueueConfig) { c.maxAttempts = n }
}

// UniqueFor drops duplicates of the same task and payload inserted within d.
func UniqueFor(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) { c.uniqueFor = d }
}

func insertOpts(now time.Time, opts []EnqueueOption) *river.InsertOpts {
	var c enqueueConfig
	for _, opt := range opts {
		opt(&c)
	}

	ins := &river.InsertOpts{}
	if c.delay > 0 {
		ins.ScheduledAt = now.Add(c.delay)
	}
	if c.maxAttempts > 0 {
		ins.MaxAttempts = c.maxAttempts
	}
	if c.uniqueFor > 0 {
		ins.UniqueOpts = river.UniqueOpts{ByArgs: true, ByPeriod: c.uniqueFor}
	}
	return ins
}
