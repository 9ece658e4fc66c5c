package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func roundTrip(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestPlainCookies(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "missing")
		require.ErrorIs(t, err, cookie.ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Set(w, "theme", "light", 3600)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, 3600, cookies[0].MaxAge)
		require.Equal(t, "/", cookies[0].Path)
		require.True(t, cookies[0].HttpOnly)
		require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

		val, err := m.Get(roundTrip(t, w), "theme")
		require.NoError(t, err)
		require.Equal(t, "light", val)
	})

	t.Run("delete expires cookie", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Delete(w, "theme")
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Less(t, cookies[0].MaxAge, 0)
	})

	t.Run("signed operations need secret", func(t *testing.T) {
		t.Parallel()
		require.False(t, m.Signing())
		require.ErrorIs(t, m.SetSigned(httptest.NewRecorder(), "a", "b", 1), cookie.ErrNoSecret)
		_, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "a")
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}

func TestSignedCookies(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(testSecret))

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "visitor", "abc-123", cookie.OneYear))

		val, err := m.GetSigned(roundTrip(t, w), "visitor")
		require.NoError(t, err)
		require.Equal(t, "abc-123", val)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "visitor", "abc-123", cookie.OneYear))

		c := w.Result().Cookies()[0]
		c.Value = "Zm9v." + c.Value[len(c.Value)-10:]
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)

		_, err := m.GetSigned(r, "visitor")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("missing separator", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "visitor", Value: "nodot"})
		_, err := m.GetSigned(r, "visitor")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("other secret rejects signature", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "visitor", "abc", 60))

		other := cookie.New(cookie.WithSecret("another-secret-that-is-32-bytes!!"))
		_, err := other.GetSigned(roundTrip(t, w), "visitor")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})
}

func TestLoadStore(t *testing.T) {
	t.Parallel()

	for name, m := range map[string]*cookie.Manager{
		"plain":  cookie.New(),
		"signed": cookie.New(cookie.WithSecret(testSecret)),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			require.NoError(t, m.Store(w, "theme", "dark", cookie.OneYear))

			val, err := m.Load(roundTrip(t, w), "theme")
			require.NoError(t, err)
			require.Equal(t, "dark", val)
		})
	}

	t.Run("short secret is ignored", func(t *testing.T) {
		t.Parallel()
		require.False(t, cookie.New(cookie.WithSecret("short")).Signing())
	})
}
