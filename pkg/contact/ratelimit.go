package contact

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrymomot/portfolio/pkg/cache"
)

// RateLimited allows at most limit submissions per remote address in each
// fixed window.
type RateLimited struct {
	next    Submitter
	counter cache.Cache[int]
	limit   int
	window  time.Duration
	now     func() time.Time

	// Across instances sharing Redis the limit is approximate.
	mu sync.Mutex
}

// NewRateLimited wraps next. A limit below one or a non-positive window
// disables limiting.
func NewRateLimited(next Submitter, counter cache.Cache[int], limit int, window time.Duration) *RateLimited {
	return &RateLimited{next: next, counter: counter, limit: limit, window: window, now: time.Now}
}

func (r *RateLimited) Submit(ctx context.Context, s Submission) (State, error) {
	if r.limit > 0 && r.window > 0 {
		if err := r.take(ctx, s.RemoteAddr); err != nil {
			return State{}, err
		}
	}
	return r.next.Submit(ctx, s)
}

func (r *RateLimited) take(ctx context.Context, addr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	start := now.Truncate(r.window)
	key := bucketKey(addr, start)

	n, err := r.counter.Get(ctx, key)
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		return fmt.Errorf("contact: rate limit lookup: %w", err)
	}
	if n >= r.limit {
		return ErrRateLimited
	}
	return r.counter.Set(ctx, key, n+1, start.Add(r.window).Sub(now))
}

func bucketKey(addr string, start time.Time) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return "contact:rl:" + addr + ":" + strconv.FormatInt(start.Unix(), 10)
}
