package health

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/portfolio/pkg/logger"
)

const (
	StatusUp   = "up"
	StatusDown = "down"

	defaultTimeout = 3 * time.Second
)

// Probe reports whether a dependency is usable.
type Probe func(ctx context.Context) error

// Probes maps a dependency name to its probe.
type Probes map[string]Probe

// Result is the outcome of one probe.
type Result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report aggregates probe results.
type Report struct {
	Status string            `json:"status"`
	Probes map[string]Result `json:"probes,omitempty"`
}

// Up reports whether every probe passed.
func (r Report) Up() bool { return r.Status == StatusUp }

type options struct {
	log     *slog.Logger
	timeout time.Duration
}

// Option configures readiness checks.
type Option func(*options)

// WithTimeout bounds the whole readiness run.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger logs failing probes at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Check runs probes concurrently and collects their results. A probe that
// ignores cancellation is reported as ErrProbeTimeout once the deadline passes.
func Check(ctx context.Context, probes Probes, opts ...Option) Report {
	o := options{log: logger.NewNope(), timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	report := Report{Status: StatusUp}
	if len(probes) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var mu sync.Mutex
	report.Probes = make(map[string]Result, len(probes))
	for name := range probes {
		report.Probes[name] = Result{Status: StatusDown, Error: ErrProbeTimeout.Error()}
	}

	done := make(chan struct{})
	var g errgroup.Group
	for name, probe := range probes {
		g.Go(func() error {
			res := Result{Status: StatusUp}
			if err := probe(ctx); err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					err = ErrProbeTimeout
				}
				res = Result{Status: StatusDown, Error: err.Error()}
			}
			mu.Lock()
			report.Probes[name] = res
			mu.Unlock()
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}

	mu.Lock()
	defer mu.Unlock()

	out := Report{Status: StatusUp, Probes: make(map[string]Result, len(report.Probes))}
	for name, res := range report.Probes {
		out.Probes[name] = res
		if res.Status == StatusDown {
			out.Status = StatusDown
			o.log.WarnContext(ctx, "readiness probe failed",
				slog.String("probe", name),
				slog.String("error", res.Error),
			)
		}
	}
	return out
}
