// Package internal provides the core types behind the portfolio HTTP host.
//
// This package is internal. Import "github.com/dmitrymomot/portfolio", which
// re-exports the public API.
//
// # Core Types
//
//   - App: owns the chi router, global middleware and the server lifecycle
//   - Context: request/response access plus htmx-aware rendering and the
//     visitor's preferences
//   - Router: the interface handlers use to declare routes
//   - Handler: implemented by types that declare routes
//   - HandlerFunc: a route handler that returns an error
//   - Middleware: wraps a HandlerFunc
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed straight to the
// database, the job queue or an HTTP client:
//
//	func (h *Pages) submit(c portfolio.Context) error {
//	    state, err := h.contact.Submit(c, sub)
//	    ...
//	}
//
// # Preferences
//
// Theme, Language, Direction and T read the stores attached by the
// preferences middleware. Calling them on a route without that middleware
// panics with prefs.ErrNoThemeStore or prefs.ErrNoLanguageStore, which the
// Recover middleware turns into a 500.
//
// # htmx
//
// Requests carrying HX-Request are answered with a 200 whatever status the
// handler chose, because htmx does not swap non-2xx responses. Status()
// on the ResponseWriter still reports the original code for logging.
// Redirect answers htmx requests with HX-Redirect instead of a Location
// header.
//
// # Errors
//
// Handlers return errors instead of writing them. HTTPError values carry the
// status and a user-facing message; anything else becomes a 500. The error
// handler set with WithErrorHandler decides how they look.
//
// # Lifecycle
//
// App.Run listens on the address, runs startup hooks first and shutdown hooks
// last, and stops on SIGINT or SIGTERM with a bounded graceful shutdown.
package internal
