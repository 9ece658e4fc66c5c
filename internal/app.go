package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/portfolio/pkg/cookie"
	"github.com/dmitrymomot/portfolio/pkg/health"
	"github.com/dmitrymomot/portfolio/pkg/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App owns the router, the middleware stack and the server lifecycle.
// It is immutable after New returns.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	cookieManager           *cookie.Manager
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates an application from opts.
//
// Example:
//
//	app := portfolio.New(
//	    portfolio.WithLogger(log),
//	    portfolio.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    portfolio.WithHandlers(handlers.NewPages(cfg)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:        chi.NewRouter(),
		logger:        logger.NewNope(),
		cookieManager: cookie.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves on addr and blocks until SIGINT, SIGTERM or cancellation of the
// context given with WithContext. Startup hooks run before the listener
// accepts connections; shutdown hooks run after it drains.
//
// Example:
//
//	err := app.Run(":8080",
//	    portfolio.Logger(log),
//	    portfolio.WithStartupHook(jobs.Start),
//	    portfolio.WithShutdownHook(jobs.Stop),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		hopts := []health.Option{health.WithLogger(a.logger)}
		if a.healthConfig.timeout > 0 {
			hopts = append(hopts, health.WithTimeout(a.healthConfig.timeout))
		}
		a.router.Get(a.healthConfig.livenessPath, health.Live())
		a.router.Get(a.healthConfig.readinessPath, health.Ready(a.healthConfig.probes, hopts...))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError passes err to the configured error handler. Errors arriving
// after the response started are only logged.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogError("handler error after response was written", slog.String("error", err.Error()))
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			c.LogError("error handler failed", slog.String("error", herr.Error()))
			http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}
	defaultErrorHandler(c, err)
}

// defaultErrorHandler writes HTTPError messages as plain text and hides
// everything else behind a 500.
func defaultErrorHandler(c Context, err error) {
	if httpErr := AsHTTPError(err); httpErr != nil {
		if httpErr.Code >= http.StatusInternalServerError {
			c.LogError("request failed", slog.Int("status", httpErr.Code), slog.Any("error", err))
		}
		http.Error(c.Response(), httpErr.Message, httpErr.Code)
		return
	}
	c.LogError("request failed", slog.Any("error", err))
	http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
