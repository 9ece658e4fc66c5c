package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/portfolio/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that bounds request handling. The handler sees
// the deadline on its context; when it does not return in time a
// *TimeoutError goes to the error handler.
//
// The handler goroutine keeps running after the deadline. Long operations
// must watch ctx.Done().
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.SetContext(ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", slog.Duration("timeout", timeout))
					return &TimeoutError{Duration: timeout}
				}
				return ctx.Err()
			}
		}
	}
}
