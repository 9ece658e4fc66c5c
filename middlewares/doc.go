// Package middlewares provides HTTP middleware for the portfolio app.
//
// # Request ID
//
// RequestID assigns every request an ID, reusing X-Request-ID or
// X-Correlation-ID from upstream proxies and generating a UUIDv7 otherwise.
// Pair it with RequestIDExtractor so every log line carries request_id:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	app := portfolio.New(
//	    portfolio.WithLogger(log),
//	    portfolio.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics into *PanicError for the error handler. A handler
// that reads preferences on a route without the Preferences middleware
// panics with an error wrapping prefs.ErrNoThemeStore or
// prefs.ErrNoLanguageStore; errors.Is sees through the PanicError.
//
// # Timeout
//
// Timeout puts a deadline on the request context and reports *TimeoutError
// when the handler overruns it.
//
// # Preferences
//
// Preferences builds a theme store and a language store for each request,
// initializes them, and attaches both to the context along with the document
// root. Handlers read them through Context.Theme, Context.Language and
// Context.T, or the prefs accessors:
//
//	portfolio.WithMiddleware(
//	    middlewares.Preferences(translations, middlewares.WithCacheStorage(store, 0)),
//	)
package middlewares
