package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/portfolio/pkg/cookie"
	"github.com/dmitrymomot/portfolio/pkg/htmx"
	"github.com/dmitrymomot/portfolio/pkg/prefs"
)

// Component is the interface for renderable templates.
// It is satisfied by templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the wrapped http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// FormValue returns the first value for the named form field,
	// parsing the body on first use.
	FormValue(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// IsHTMX reports whether the request was issued by htmx.
	IsHTMX() bool

	// Render writes component with the given status code.
	// htmx options are applied to htmx requests only.
	Render(code int, component Component, opts ...htmx.Option) error

	// RenderPartial renders partial for htmx requests that want a fragment
	// and fullPage for everything else.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.Option) error

	// Redirect sends the client to url. htmx requests get HX-Redirect.
	Redirect(code int, url string) error

	// JSON writes v as JSON with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Error builds an HTTPError without writing anything.
	// Return it from the handler to reach the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written reports whether the response header has been sent.
	Written() bool

	// ResponseWriter returns the wrapper for hooks and status inspection.
	ResponseWriter() *ResponseWriter

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get retrieves a value from the request context.
	Get(key any) any

	// SetContext replaces the request context. Middleware uses it to attach
	// values through helpers such as prefs.WithThemeStore, or a deadline.
	SetContext(ctx context.Context)

	// Cookies returns the app's cookie manager.
	Cookies() *cookie.Manager

	// Theme returns the visitor's theme.
	// It panics when the preferences middleware did not run.
	Theme() prefs.Theme

	// Language returns the active language.
	// It panics when the preferences middleware did not run.
	Language() prefs.Language

	// Direction returns the text direction of the active language.
	Direction() prefs.Direction

	// T translates key in the active language. Unknown keys come back unchanged.
	T(key string) string
}

// requestContext implements the Context interface.
type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	cookieManager  *cookie.Manager
}

// newContext wraps w unless an outer middleware already did.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, htmx.IsHTMX(r))
	}
	return &requestContext{
		request:        r,
		responseWriter: rw,
		logger:         app.logger,
		cookieManager:  app.cookieManager,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) FormValue(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

func (c *requestContext) Render(code int, component Component, opts ...htmx.Option) error {
	h := c.responseWriter.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	if len(opts) > 0 && htmx.IsHTMX(c.request) {
		htmx.NewOptions(opts...).Apply(h)
	}

	c.responseWriter.WriteHeader(code)
	return component.Render(c.request.Context(), c.responseWriter)
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.Option) error {
	if htmx.WantsPartial(c.request) {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Redirect(code int, url string) error {
	if htmx.IsHTMX(c.request) {
		c.responseWriter.Header().Set(htmx.HeaderRedirect, url)
		c.responseWriter.WriteHeader(http.StatusOK)
		return nil
	}
	http.Redirect(c.responseWriter, c.request, url, code)
	return nil
}

func (c *requestContext) JSON(code int, v any) error {
	c.responseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return json.NewEncoder(c.responseWriter).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err := io.WriteString(c.responseWriter, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.responseWriter.WriteHeader(code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) SetContext(ctx context.Context) {
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Cookies() *cookie.Manager {
	return c.cookieManager
}

func (c *requestContext) Theme() prefs.Theme {
	return prefs.ThemeStoreFrom(c.request.Context()).Theme()
}

func (c *requestContext) Language() prefs.Language {
	return prefs.LanguageStoreFrom(c.request.Context()).Language()
}

func (c *requestContext) Direction() prefs.Direction {
	return prefs.LanguageStoreFrom(c.request.Context()).Direction()
}

func (c *requestContext) T(key string) string {
	return prefs.LanguageStoreFrom(c.request.Context()).T(key)
}
