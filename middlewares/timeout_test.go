package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("fast handler completes", func(t *testing.T) {
		t.Parallel()

		w, err := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			_, hasDeadline := c.Deadline()
			assert.True(t, hasDeadline)
			return c.String(http.StatusOK, "done")
		}, middlewares.Timeout(time.Second))

		require.NoError(t, err)
		require.Equal(t, "done", w.Body.String())
	})

	t.Run("slow handler times out", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)

		w, err := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			select {
			case <-c.Done():
			case <-release:
			}
			return nil
		}, middlewares.Timeout(20*time.Millisecond))

		te, ok := middlewares.AsTimeoutError(err)
		require.True(t, ok)
		require.Equal(t, 20*time.Millisecond, te.Duration)
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("handler error passes through", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		_, err := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			return boom
		}, middlewares.Timeout(0))

		require.ErrorIs(t, err, boom)
	})
}
