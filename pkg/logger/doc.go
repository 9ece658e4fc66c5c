// Package logger builds the application's *slog.Logger.
//
// Records go to stdout as JSON (or text for local development). When a
// Sentry DSN is configured the same records are fanned out to Sentry: errors
// become issues, warnings and errors are kept as searchable logs. Context
// extractors add request-scoped attributes such as the request id to every
// record, whichever destination it ends up in.
//
//	log := logger.New(logger.Config{
//		Level:  "info",
//		Format: "json",
//		Sentry: logger.SentryConfig{DSN: os.Getenv("SENTRY_DSN")},
//	}, middlewares.RequestIDExtractor())
//
// Use NewNope in tests and as a default where logging is optional.
package logger
