package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/middlewares"
	"github.com/dmitrymomot/portfolio/pkg/assets"
	"github.com/dmitrymomot/portfolio/pkg/contact"
	"github.com/dmitrymomot/portfolio/pkg/htmx"
	"github.com/dmitrymomot/portfolio/pkg/prefs"
	"github.com/dmitrymomot/portfolio/site/content"
	"github.com/dmitrymomot/portfolio/site/handlers"
)

// recorder is a contact.Submitter that remembers what it received.
type recorder struct {
	state contact.State
	err   error
	got   []contact.Submission
	mu    sync.Mutex
}

func (r *recorder) Submit(_ context.Context, s contact.Submission) (contact.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, s)
	return r.state, r.err
}

func (r *recorder) submissions() []contact.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]contact.Submission(nil), r.got...)
}

func newApp(t *testing.T, sub contact.Submitter) *internal.App {
	t.Helper()

	tr, err := content.LoadTranslations(nil)
	require.NoError(t, err)

	files := fstest.MapFS{
		"photo.jpg":  {Data: []byte("jpg")},
		"resume.pdf": {Data: []byte("pdf")},
	}
	profile := content.DefaultProfile()

	return internal.New(
		internal.WithMiddleware(middlewares.Preferences(tr)),
		internal.WithHandlers(handlers.NewPages(sub, assets.Local{FS: files},
			handlers.WithLinks(handlers.Links{GitHub: "https://github.com/haian"}),
		)),
		internal.WithErrorHandler(handlers.ErrorHandler(tr, profile)),
		internal.WithNotFoundHandler(handlers.NotFound),
	)
}

func do(app *internal.App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func form(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHome(t *testing.T) {
	t.Parallel()

	app := newApp(t, &recorder{})

	t.Run("first visit follows the dark hint", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(prefs.HeaderPrefersColorScheme, "dark")

		w := do(app, req)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `<html lang="en" class="dark">`)
		assert.Contains(t, body, `src="/assets/photo.jpg"`)
		assert.Contains(t, body, `href="https://github.com/haian"`)
		assert.Contains(t, body, "Get in Touch")
	})

	t.Run("arabic by query", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?lang=ar", nil)
		req.AddCookie(&http.Cookie{Name: prefs.DefaultThemeKey, Value: "light"})

		w := do(app, req)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `<html lang="ar" class="">`)
		assert.Contains(t, body, `<div dir="rtl">`)
		assert.Contains(t, body, "دعنا نتواصل")
	})

	t.Run("unsupported language renders the error page", func(t *testing.T) {
		t.Parallel()
		w := do(app, httptest.NewRequest(http.MethodGet, "/?lang=fr", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "This language is not supported.")
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()
		w := do(app, httptest.NewRequest(http.MethodGet, "/missing?lang=ar", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "الصفحة غير موجودة.")
	})
}

func TestToggleTheme(t *testing.T) {
	t.Parallel()

	app := newApp(t, &recorder{})

	t.Run("flips the persisted theme and keeps the language", func(t *testing.T) {
		t.Parallel()
		req := form("/theme", url.Values{"lang": {"ar"}})
		req.AddCookie(&http.Cookie{Name: prefs.DefaultThemeKey, Value: "dark"})

		w := do(app, req)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/?lang=ar", w.Header().Get("Location"))

		var theme string
		for _, ck := range w.Result().Cookies() {
			if ck.Name == prefs.DefaultThemeKey {
				theme = ck.Value
			}
		}
		assert.Equal(t, "light", theme)
	})

	t.Run("one theme cookie per response", func(t *testing.T) {
		t.Parallel()
		req := form("/theme", nil)
		req.AddCookie(&http.Cookie{Name: prefs.DefaultThemeKey, Value: "dark"})

		w := do(app, req)
		var themes []string
		for _, ck := range w.Result().Cookies() {
			if ck.Name == prefs.DefaultThemeKey {
				themes = append(themes, ck.Value)
			}
		}
		assert.Equal(t, []string{"light"}, themes)
	})

	t.Run("toggle without any preference persists dark", func(t *testing.T) {
		t.Parallel()
		w := do(app, form("/theme", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)

		var themes []string
		for _, ck := range w.Result().Cookies() {
			if ck.Name == prefs.DefaultThemeKey {
				themes = append(themes, ck.Value)
			}
		}
		assert.Equal(t, []string{"dark"}, themes)
	})

	t.Run("htmx gets HX-Redirect", func(t *testing.T) {
		t.Parallel()
		req := form("/theme", nil)
		req.Header.Set(htmx.HeaderRequest, "true")

		w := do(app, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/", w.Header().Get(htmx.HeaderRedirect))
	})
}

func TestSubmitContact(t *testing.T) {
	t.Parallel()

	valid := url.Values{
		"name":    {"  Ada <b>Lovelace</b> "},
		"email":   {"ada@example.com"},
		"message": {"Hello there"},
		"lang":    {"ar"},
	}

	t.Run("htmx success returns the form partial", func(t *testing.T) {
		t.Parallel()
		sub := &recorder{state: contact.State{Succeeded: true}}
		app := newApp(t, sub)

		req := form("/contact", valid)
		req.Header.Set(htmx.HeaderRequest, "true")
		w := do(app, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.True(t, strings.HasPrefix(strings.TrimSpace(body), `<form id="contact-form"`), body)
		assert.NotContains(t, body, "<html")
		assert.Contains(t, body, "شكراً لتواصلك! سأرد عليك في أقرب وقت ممكن.")
		assert.Equal(t, string(htmx.SwapOuterHTML), w.Header().Get(htmx.HeaderReswap))

		got := sub.submissions()
		require.Len(t, got, 1)
		assert.Equal(t, "Ada Lovelace", got[0].Name)
		assert.Equal(t, "ar", got[0].Language)
		assert.Equal(t, "192.0.2.1", got[0].RemoteAddr)
	})

	t.Run("invalid input is not submitted", func(t *testing.T) {
		t.Parallel()
		sub := &recorder{}
		app := newApp(t, sub)

		w := do(app, form("/contact", url.Values{"name": {"Ada"}, "email": {"not-an-email"}}))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<html")
		assert.Contains(t, body, "Please enter a valid email address.")
		assert.Contains(t, body, "This field is required.")
		assert.Empty(t, sub.submissions())
	})

	t.Run("htmx validation errors swap with 200", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, &recorder{})

		req := form("/contact", url.Values{})
		req.Header.Set(htmx.HeaderRequest, "true")
		w := do(app, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `data-field="message"`)
	})

	t.Run("rate limited", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, &recorder{err: contact.ErrRateLimited})

		w := do(app, form("/contact", valid))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "رسائل كثيرة جداً")
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, &recorder{err: errors.Join(contact.ErrSubmitFailed, errors.New("boom"))})

		w := do(app, form("/contact", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}))
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Your message could not be sent.")
		assert.Contains(t, w.Body.String(), `value="Ada"`)
	})

	t.Run("backend field errors", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, &recorder{state: contact.State{Errors: []contact.FieldError{
			{Field: contact.FieldEmail, Code: contact.CodeRejected, Message: "should be an email"},
		}}})

		w := do(app, form("/contact", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "should be an email")
	})
}

func TestResume(t *testing.T) {
	t.Parallel()

	app := newApp(t, &recorder{})
	w := do(app, httptest.NewRequest(http.MethodGet, "/resume", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/assets/resume.pdf", w.Header().Get("Location"))

	tr, err := content.LoadTranslations(nil)
	require.NoError(t, err)
	missing := internal.New(
		internal.WithMiddleware(middlewares.Preferences(tr)),
		internal.WithHandlers(handlers.NewPages(&recorder{}, assets.Local{FS: fstest.MapFS{}})),
		internal.WithErrorHandler(handlers.ErrorHandler(tr, content.DefaultProfile())),
	)
	w = do(missing, httptest.NewRequest(http.MethodGet, "/resume", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found.")
}
