package internal

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunServer(t *testing.T) {
	t.Parallel()

	t.Run("serves until context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var calls []string
		ready := make(chan string, 1)
		done := make(chan error, 1)
		go func() {
			done <- runServer(runtimeConfig{
				handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					_, _ = io.WriteString(w, "up")
				}),
				address: "127.0.0.1:0",
				baseCtx: ctx,
				ready:   ready,
				startupHooks: []func(context.Context) error{
					func(context.Context) error { calls = append(calls, "start"); return nil },
				},
				shutdownHooks: []func(context.Context) error{
					func(context.Context) error { calls = append(calls, "stop-1"); return errors.New("close failed") },
					func(context.Context) error { calls = append(calls, "stop-2"); return nil },
				},
				shutdownTimeout: time.Second,
			})
		}()

		var addr string
		select {
		case addr = <-ready:
		case <-time.After(5 * time.Second):
			t.Fatal("server did not start")
		}

		resp, err := http.Get("http://" + addr + "/")
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		assert.Equal(t, "up", string(body))

		cancel()

		select {
		case err := <-done:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "close failed")
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
		assert.Equal(t, []string{"start", "stop-1", "stop-2"}, calls)
	})

	t.Run("startup hook failure aborts", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("migrations pending")
		err := runServer(runtimeConfig{
			handler: http.NotFoundHandler(),
			address: "127.0.0.1:0",
			startupHooks: []func(context.Context) error{
				func(context.Context) error { return boom },
			},
		})
		require.ErrorIs(t, err, boom)
	})

	t.Run("listen failure still runs shutdown hooks", func(t *testing.T) {
		t.Parallel()

		stopped := false
		err := runServer(runtimeConfig{
			handler: http.NotFoundHandler(),
			address: "256.0.0.1:bad",
			shutdownHooks: []func(context.Context) error{
				func(context.Context) error { stopped = true; return nil },
			},
			shutdownTimeout: time.Second,
		})
		require.Error(t, err)
		assert.True(t, stopped)
	})
}
