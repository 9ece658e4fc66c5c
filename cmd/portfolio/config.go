package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/portfolio/pkg/assets"
	"github.com/dmitrymomot/portfolio/pkg/db"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
	"github.com/dmitrymomot/portfolio/pkg/mailer/resend"
	"github.com/dmitrymomot/portfolio/pkg/redis"
	"github.com/dmitrymomot/portfolio/site/handlers"
)

// Config is the whole application configuration, read from the environment.
type Config struct {
	Server   ServerConfig    `envPrefix:"SERVER_"`
	Log      logger.Config   `envPrefix:"LOG_"`
	Cookie   CookieConfig    `envPrefix:"COOKIE_"`
	Prefs    PrefsConfig     `envPrefix:"PREFS_"`
	Redis    redis.Config    `envPrefix:"REDIS_"`
	Database db.Config       `envPrefix:"DATABASE_"`
	Contact  ContactConfig   `envPrefix:"CONTACT_"`
	Mailer   mailer.Config   `envPrefix:"MAILER_"`
	Resend   resend.Config   `envPrefix:"RESEND_"`
	S3       assets.S3Config `envPrefix:"S3_"`
	Links    handlers.Links  `envPrefix:"LINKS_"`
}

type ServerConfig struct {
	Addr             string        `env:"ADDR" envDefault:":8080"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"3s"`
	// AssetsDir holds the photo and resume when S3 is not configured.
	AssetsDir string `env:"ASSETS_DIR" envDefault:"./assets"`
}

type CookieConfig struct {
	Secret string `env:"SECRET"`
	Domain string `env:"DOMAIN"`
	Secure bool   `env:"SECURE" envDefault:"true"`
}

// Preference storage backends.
const (
	PrefsCookie = "cookie"
	PrefsCache  = "cache"
)

type PrefsConfig struct {
	// Backend is "cookie" (theme in a signed cookie) or "cache" (theme in
	// Redis or memory, keyed by a visitor cookie).
	Backend      string        `env:"BACKEND" envDefault:"cookie"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"8760h"`
	DefaultTheme string        `env:"DEFAULT_THEME" envDefault:"dark"`
}

// Contact form backends.
const (
	ContactLog       = "log"
	ContactFormspree = "formspree"
	ContactInbox     = "inbox"
)

type ContactConfig struct {
	// Backend is "formspree", "inbox" (Postgres plus email) or "log".
	Backend       string        `env:"BACKEND" envDefault:"formspree"`
	FormspreeID   string        `env:"FORMSPREE_ID"`
	NotifyTo      string        `env:"NOTIFY_TO"`
	RateLimit     int           `env:"RATE_LIMIT" envDefault:"5"`
	RateWindow    time.Duration `env:"RATE_WINDOW" envDefault:"1h"`
	Retention     time.Duration `env:"RETENTION" envDefault:"2160h"`
	PurgeSchedule string        `env:"PURGE_SCHEDULE" envDefault:"0 3 * * *"`
	Workers       int           `env:"WORKERS" envDefault:"2"`
}

// loadConfig parses the environment.
func loadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Prefs.Backend {
	case PrefsCookie, PrefsCache:
	default:
		return fmt.Errorf("%w: PREFS_BACKEND %q", ErrInvalidConfig, c.Prefs.Backend)
	}

	switch c.Contact.Backend {
	case ContactLog:
	case ContactFormspree:
		if c.Contact.FormspreeID == "" {
			return fmt.Errorf("%w: CONTACT_FORMSPREE_ID is required for the formspree backend", ErrInvalidConfig)
		}
	case ContactInbox:
		if !c.Database.Enabled() {
			return fmt.Errorf("%w: DATABASE_URL is required for the inbox backend", ErrInvalidConfig)
		}
		if c.Contact.NotifyTo == "" {
			return fmt.Errorf("%w: CONTACT_NOTIFY_TO is required for the inbox backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: CONTACT_BACKEND %q", ErrInvalidConfig, c.Contact.Backend)
	}
	return nil
}
