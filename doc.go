// Package portfolio serves a bilingual (English and Arabic) personal
// portfolio site with a dark/light theme toggle and a contact form.
//
// The root package is a thin facade over the application core. It exposes the
// App, the request Context and the options used to assemble a site from
// handlers and middleware:
//
//	app := portfolio.New(
//	    portfolio.WithLogger(log),
//	    portfolio.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Preferences(translations),
//	    ),
//	    portfolio.WithHandlers(handlers.NewPages(deps)),
//	    portfolio.WithHealthChecks(
//	        portfolio.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	    ),
//	)
//
//	if err := app.Run(":8080", portfolio.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Preferences
//
// Every request carries two preference stores attached by
// middlewares.Preferences. The theme store resolves the visitor's persisted
// theme, falling back to the Sec-CH-Prefers-Color-Scheme client hint, and
// writes the result as the "dark" class on the document root. The language
// store holds the active language, applies the text direction to the
// document root and translates keys from the "portfolio" namespace:
//
//	func (h *Pages) home(c portfolio.Context) error {
//	    title := c.T("hero.title")
//	    if c.Theme() == prefs.ThemeDark { ... }
//	    return c.Render(http.StatusOK, views.Home(title))
//	}
//
// Reading a preference on a route that is not wrapped by the middleware
// panics with an error wrapping prefs.ErrNoThemeStore or
// prefs.ErrNoLanguageStore.
//
// # htmx
//
// Context.Render and Context.Redirect are htmx-aware. A redirect of an htmx
// request becomes an HX-Redirect header with a 200 status, and non-2xx
// statuses are rewritten to 200 so htmx swaps error fragments.
//
// # Errors
//
// Handlers return errors; the configured ErrorHandler turns them into
// responses. HTTPError carries the status code, a user-facing message and an
// optional translation key in ErrorCode:
//
//	return portfolio.ErrTooManyRequests("",
//	    portfolio.WithErrorCode("contact.errors.rate_limited"),
//	)
//
// # Shutdown
//
// Run blocks until SIGINT/SIGTERM or cancellation of the context passed with
// WithContext, then drains in-flight requests within ShutdownTimeout and runs
// shutdown hooks in registration order.
package portfolio
