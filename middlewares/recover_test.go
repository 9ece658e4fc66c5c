package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/middlewares"
	"github.com/dmitrymomot/portfolio/pkg/prefs"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("recovers from panic and returns PanicError", func(t *testing.T) {
		t.Parallel()

		w, err := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			panic("test panic")
		}, middlewares.Recover())

		require.Equal(t, http.StatusInternalServerError, w.Code)
		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "test panic", pe.Value)
		require.NotEmpty(t, pe.Stack)
	})

	t.Run("passes through when no panic", func(t *testing.T) {
		t.Parallel()

		w, err := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), ok, middlewares.Recover())
		require.NoError(t, err)
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("disabled stack", func(t *testing.T) {
		t.Parallel()

		_, err := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			panic("test panic")
		}, middlewares.Recover(middlewares.WithRecoverDisablePrintStack()))

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("stack size is capped", func(t *testing.T) {
		t.Parallel()

		_, err := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			panic("test panic")
		}, middlewares.Recover(middlewares.WithRecoverStackSize(64)))

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.LessOrEqual(t, len(pe.Stack), 64)
	})

	t.Run("preferences read without middleware", func(t *testing.T) {
		t.Parallel()

		w, err := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
			return c.String(http.StatusOK, c.T("nav.about"))
		}, middlewares.Recover())

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.ErrorIs(t, err, prefs.ErrNoLanguageStore)
	})
}
