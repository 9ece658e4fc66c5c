package job

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"sync"
)

// Task is a named handler for payloads of type P.
type Task[P any] interface {
	Name() string
	Handle(ctx context.Context, payload P) error
}

// PeriodicTask runs on a cron schedule without a payload.
type PeriodicTask interface {
	Name() string
	Schedule() string
	Handle(ctx context.Context) error
}

type executor func(ctx context.Context, raw json.RawMessage) error

type registry struct {
	mu    sync.RWMutex
	tasks map[string]executor
}

func newRegistry() *registry {
	return &registry{tasks: make(map[string]executor)}
}

func (r *registry) add(name string, ex executor) {
	r.mu.Lock()
	r.tasks[name] = ex
	r.mu.Unlock()
}

func (r *registry) get(name string) (executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ex, ok := r.tasks[name]
	return ex, ok
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.tasks))
}

func typed[P any](t Task[P]) executor {
	return func(ctx context.Context, raw json.RawMessage) error {
		var p P
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return errors.Join(ErrInvalidPayload, err)
			}
		}
		return t.Handle(ctx, p)
	}
}

func periodic(t PeriodicTask) executor {
	return func(ctx context.Context, _ json.RawMessage) error {
		return t.Handle(ctx)
	}
}
