package prefs

import (
	"context"
	"sync"
)

// Gate is a one-shot readiness signal. It starts closed and opens exactly
// once; it never closes again.
type Gate struct {
	ch   chan struct{}
	once sync.Once
}

// NewGate returns a closed gate.
func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Open opens the gate. It reports whether this call was the one that opened it.
func (g *Gate) Open() bool {
	opened := false
	g.once.Do(func() {
		close(g.ch)
		opened = true
	})
	return opened
}

// IsOpen reports whether the gate has been opened.
func (g *Gate) IsOpen() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the gate opens.
func (g *Gate) Done() <-chan struct{} {
	return g.ch
}

// Wait blocks until the gate opens or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
