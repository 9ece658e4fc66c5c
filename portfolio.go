package portfolio

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/portfolio/internal"
	"github.com/dmitrymomot/portfolio/pkg/cookie"
	"github.com/dmitrymomot/portfolio/pkg/health"
)

// Type aliases - public API
type (
	// App owns the router, the middleware stack and the server lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access, htmx-aware rendering and
	// the visitor's preferences.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// ResponseWriter wraps http.ResponseWriter with hooks and htmx support.
	ResponseWriter = internal.ResponseWriter

	// HTTPError carries a status code and a user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption
)

// New creates an application. The App is immutable after creation.
//
// Example:
//
//	app := portfolio.New(
//	    portfolio.WithLogger(log),
//	    portfolio.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    portfolio.WithHandlers(handlers.NewPages(deps)),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware. The first one listed runs first.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles serves subDir of fsys under pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets the handler for errors returned from handlers.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets the handler for unmatched routes.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets the handler for unsupported methods.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks mounts /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithCookieManager sets the cookie manager shared by every request.
func WithCookieManager(m *cookie.Manager) Option {
	return internal.WithCookieManager(m)
}

// Health options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessTimeout bounds a single readiness run.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return internal.WithReadinessTimeout(d)
}

// WithReadinessCheck adds a named readiness probe.
func WithReadinessCheck(name string, probe health.Probe) HealthOption {
	return internal.WithReadinessCheck(name, probe)
}

// Run options

// Logger sets the runtime logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// WithStartupHook registers a function to run before serving.
func WithStartupHook(fn func(context.Context) error) RunOption {
	return internal.WithStartupHook(fn)
}

// WithShutdownHook registers a cleanup function to run after the server stops.
func WithShutdownHook(fn func(context.Context) error) RunOption {
	return internal.WithShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError with the given status.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// ErrBadRequest returns a 400 HTTPError.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound returns a 404 HTTPError.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrUnprocessable returns a 422 HTTPError.
func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

// ErrTooManyRequests returns a 429 HTTPError.
func ErrTooManyRequests(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrTooManyRequests(message, opts...)
}

// ErrInternal returns a 500 HTTPError.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// ErrBadGateway returns a 502 HTTPError.
func ErrBadGateway(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadGateway(message, opts...)
}

// WithTitle sets the error title.
func WithTitle(title string) HTTPErrorOption {
	return internal.WithTitle(title)
}

// WithDetail sets an extended description.
func WithDetail(detail string) HTTPErrorOption {
	return internal.WithDetail(detail)
}

// WithErrorCode sets an application error code, usually a translation key.
func WithErrorCode(code string) HTTPErrorOption {
	return internal.WithErrorCode(code)
}

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// AsHTTPError extracts the HTTPError from err's chain, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// IsHTTPError reports whether err's chain contains an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// ContextValue retrieves a typed value stored with Context.Set.
// It returns the zero value when the key is missing or holds another type.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}
