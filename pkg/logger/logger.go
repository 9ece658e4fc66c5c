package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config holds logger settings.
type Config struct {
	Level  string       `env:"LEVEL" envDefault:"info"`
	Format string       `env:"FORMAT" envDefault:"json"`
	Sentry SentryConfig `envPrefix:"SENTRY_"`

	// Output defaults to os.Stdout.
	Output io.Writer `env:"-"`
}

// SentryConfig holds Sentry integration settings. An empty DSN disables Sentry.
type SentryConfig struct {
	DSN         string `env:"DSN"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
	// MinLevel is "warn" (warnings and errors kept as logs) or "error".
	MinLevel string `env:"MIN_LEVEL" envDefault:"warn"`
}

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// New creates a logger from cfg. Sentry initialization failures are logged
// and the logger falls back to the primary output only.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var primary slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		primary = slog.NewTextHandler(out, opts)
	} else {
		primary = slog.NewJSONHandler(out, opts)
	}

	if cfg.Sentry.DSN == "" {
		return slog.New(NewContextHandler(primary, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(primary).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(primary, extractors...))
	}

	logLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if ParseLevel(cfg.Sentry.MinLevel) >= slog.LevelError {
		logLevels = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(Fanout(primary, sentryHandler), extractors...))
}

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to slog levels.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
