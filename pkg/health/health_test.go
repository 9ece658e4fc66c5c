package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/portfolio/pkg/health"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ok(context.Context) error { return nil }

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("no probes is up", func(t *testing.T) {
		t.Parallel()
		r := health.Check(context.Background(), nil)
		assert.True(t, r.Up())
		assert.Empty(t, r.Probes)
	})

	t.Run("one failure marks report down", func(t *testing.T) {
		t.Parallel()
		r := health.Check(context.Background(), health.Probes{
			"postgres": ok,
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})
		require.False(t, r.Up())
		assert.Equal(t, health.StatusUp, r.Probes["postgres"].Status)
		assert.Equal(t, health.Result{Status: health.StatusDown, Error: "connection refused"}, r.Probes["redis"])
	})

	t.Run("slow probe times out", func(t *testing.T) {
		t.Parallel()
		r := health.Check(context.Background(), health.Probes{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}, health.WithTimeout(10*time.Millisecond))
		require.False(t, r.Up())
		assert.Equal(t, health.ErrProbeTimeout.Error(), r.Probes["slow"].Error)
	})
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	t.Run("live", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		health.Live()(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	})

	t.Run("ready json", func(t *testing.T) {
		t.Parallel()
		h := health.Ready(health.Probes{"db": func(context.Context) error { return errors.New("down") }})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		r.Header.Set("Accept", "application/json")
		h(w, r)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var report health.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, health.StatusDown, report.Status)
		assert.Equal(t, "down", report.Probes["db"].Error)
	})

	t.Run("ready text", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		health.Ready(health.Probes{"db": ok})(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	})
}
