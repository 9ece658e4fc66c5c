package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/portfolio"
	"github.com/dmitrymomot/portfolio/middlewares"
	"github.com/dmitrymomot/portfolio/pkg/assets"
	"github.com/dmitrymomot/portfolio/pkg/cache"
	"github.com/dmitrymomot/portfolio/pkg/contact"
	"github.com/dmitrymomot/portfolio/pkg/cookie"
	"github.com/dmitrymomot/portfolio/pkg/db"
	"github.com/dmitrymomot/portfolio/pkg/job"
	"github.com/dmitrymomot/portfolio/pkg/mailer"
	"github.com/dmitrymomot/portfolio/pkg/mailer/resend"
	"github.com/dmitrymomot/portfolio/pkg/prefs"
	"github.com/dmitrymomot/portfolio/pkg/redis"
	"github.com/dmitrymomot/portfolio/site/content"
	"github.com/dmitrymomot/portfolio/site/handlers"
	"github.com/dmitrymomot/portfolio/site/views"
)

var ErrInvalidConfig = errors.New("portfolio: invalid configuration")

// server is a fully wired application plus what Run needs to manage it.
type server struct {
	app     *portfolio.App
	runOpts []portfolio.RunOption
}

// infra holds the optional backing services.
type infra struct {
	redis   goredis.UniversalClient
	pool    *pgxpool.Pool
	jobs    *job.Manager
	closers []io.Closer
}

// memory returns an in-process cache that is closed on shutdown.
func memory[V any](inf *infra) cache.Cache[V] {
	m := cache.NewMemory[V]()
	inf.closers = append(inf.closers, m)
	return m
}

// buildServer connects to whatever cfg enables and assembles the app.
// Connections opened before a failure are closed.
func buildServer(ctx context.Context, cfg Config, log *slog.Logger) (_ *server, err error) {
	var (
		inf      infra
		shutdown []func(context.Context) error
		opts     []portfolio.HealthOption
	)
	defer func() {
		if err == nil {
			return
		}
		for _, fn := range shutdown {
			_ = fn(context.WithoutCancel(ctx))
		}
		for _, c := range inf.closers {
			_ = c.Close()
		}
	}()

	if cfg.Redis.URL != "" {
		if inf.redis, err = redis.Open(ctx, cfg.Redis); err != nil {
			return nil, err
		}
		shutdown = append(shutdown, redis.Shutdown(inf.redis))
		opts = append(opts, portfolio.WithReadinessCheck("redis", redis.Healthcheck(inf.redis)))
	}

	if cfg.Database.Enabled() {
		if inf.pool, err = db.Open(ctx, cfg.Database); err != nil {
			return nil, err
		}
		shutdown = append(shutdown, db.Shutdown(inf.pool))
		opts = append(opts, portfolio.WithReadinessCheck("postgres", db.Healthcheck(inf.pool)))
	}

	tr, err := content.LoadTranslations(log)
	if err != nil {
		return nil, err
	}

	submitter, err := contactBackend(cfg, log, &inf)
	if err != nil {
		return nil, err
	}
	if inf.jobs != nil {
		// Stop before the pool closes; hooks run in registration order.
		shutdown = append([]func(context.Context) error{inf.jobs.Stop}, shutdown...)
		opts = append(opts, portfolio.WithReadinessCheck("jobs", inf.jobs.Healthcheck))
	}

	resolver, err := assetResolver(cfg, &inf)
	if err != nil {
		return nil, err
	}

	prefsOpts, err := preferenceOptions(cfg, &inf)
	if err != nil {
		return nil, err
	}
	limit := counter(&inf)

	for _, c := range inf.closers {
		shutdown = append(shutdown, func(context.Context) error { return c.Close() })
	}

	profile := content.DefaultProfile()
	appOpts := []portfolio.Option{
		portfolio.WithLogger(log),
		portfolio.WithCookieManager(cookie.New(
			cookie.WithSecret(cfg.Cookie.Secret),
			cookie.WithDomain(cfg.Cookie.Domain),
			cookie.WithSecure(cfg.Cookie.Secure),
		)),
		portfolio.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.Server.RequestTimeout),
			middlewares.Preferences(tr, prefsOpts...),
		),
		portfolio.WithHandlers(handlers.NewPages(
			contact.NewRateLimited(submitter, limit, cfg.Contact.RateLimit, cfg.Contact.RateWindow),
			resolver,
			handlers.WithProfile(profile),
			handlers.WithLinks(cfg.Links),
		)),
		portfolio.WithErrorHandler(handlers.ErrorHandler(tr, profile)),
		portfolio.WithNotFoundHandler(handlers.NotFound),
		portfolio.WithStaticFiles("/static/", views.Static(), "static"),
		portfolio.WithHealthChecks(append(opts, portfolio.WithReadinessTimeout(cfg.Server.ReadinessTimeout))...),
	}
	if !cfg.S3.Enabled() {
		appOpts = append(appOpts, portfolio.WithStaticFiles("/assets/", os.DirFS(cfg.Server.AssetsDir), "."))
	}

	runOpts := []portfolio.RunOption{
		portfolio.Logger(log),
		portfolio.ShutdownTimeout(cfg.Server.ShutdownTimeout),
	}
	if inf.jobs != nil {
		runOpts = append(runOpts, portfolio.WithStartupHook(inf.jobs.Start))
	}
	for _, fn := range shutdown {
		runOpts = append(runOpts, portfolio.WithShutdownHook(fn))
	}

	return &server{app: portfolio.New(appOpts...), runOpts: runOpts}, nil
}

func contactBackend(cfg Config, log *slog.Logger, inf *infra) (contact.Submitter, error) {
	switch cfg.Contact.Backend {
	case ContactFormspree:
		return contact.NewFormspree(cfg.Contact.FormspreeID)

	case ContactInbox:
		if inf.pool == nil {
			return nil, fmt.Errorf("%w: inbox backend needs a database", ErrInvalidConfig)
		}
		jobs, err := job.NewManager(inf.pool,
			job.WithLogger(log),
			job.WithMaxWorkers(cfg.Contact.Workers),
			job.WithTask[contact.NotifyPayload](contact.NewNotifyTask(inf.pool, newMailer(cfg, log), cfg.Contact.NotifyTo, log)),
			job.WithPeriodicTask(contact.NewPurgeTask(inf.pool, cfg.Contact.Retention, cfg.Contact.PurgeSchedule, log)),
		)
		if err != nil {
			return nil, err
		}
		inf.jobs = jobs
		return contact.NewInbox(inf.pool, jobs, contact.WithInboxLogger(log)), nil

	default:
		return contact.SubmitterFunc(func(ctx context.Context, s contact.Submission) (contact.State, error) {
			log.InfoContext(ctx, "contact message received",
				slog.String("name", s.Name),
				slog.String("email", s.Email),
				slog.String("language", s.Language),
			)
			return contact.State{Succeeded: true}, nil
		}), nil
	}
}

func newMailer(cfg Config, log *slog.Logger) *mailer.Mailer {
	var sender mailer.Sender = mailer.LogSender{Logger: log}
	if cfg.Resend.APIKey != "" {
		sender = resend.New(cfg.Resend)
	}
	return mailer.New(sender, mailer.NewRenderer(contact.MailTemplates, contact.MailLayout), cfg.Mailer)
}

func assetResolver(cfg Config, inf *infra) (assets.Resolver, error) {
	if !cfg.S3.Enabled() {
		return assets.Local{Prefix: "/assets", FS: os.DirFS(cfg.Server.AssetsDir)}, nil
	}

	var urls cache.Cache[string]
	if inf.redis != nil {
		urls = cache.NewRedis[string](inf.redis, nil, cache.WithPrefix("assets:"))
	} else {
		urls = memory[string](inf)
	}
	return assets.NewS3(cfg.S3, urls)
}

func preferenceOptions(cfg Config, inf *infra) ([]middlewares.PreferencesOption, error) {
	theme, err := prefs.ParseTheme(cfg.Prefs.DefaultTheme)
	if err != nil {
		return nil, fmt.Errorf("%w: PREFS_DEFAULT_THEME: %w", ErrInvalidConfig, err)
	}
	opts := []middlewares.PreferencesOption{middlewares.WithPreferencesDefaultTheme(theme)}

	if cfg.Prefs.Backend == PrefsCache {
		var store cache.Cache[string]
		if inf.redis != nil {
			store = cache.NewRedis[string](inf.redis, nil, cache.WithPrefix("prefs:"))
		} else {
			store = memory[string](inf)
		}
		opts = append(opts, middlewares.WithCacheStorage(store, cfg.Prefs.CacheTTL))
	}
	return opts, nil
}

// counter backs the contact rate limit.
func counter(inf *infra) cache.Cache[int] {
	if inf.redis != nil {
		return cache.NewRedis[int](inf.redis, nil, cache.WithPrefix("ratelimit:"))
	}
	return memory[int](inf)
}

// run serves until ctx is cancelled or a signal arrives.
func (s *server) run(ctx context.Context, addr string) error {
	err := s.app.Run(addr, append(s.runOpts, portfolio.WithContext(ctx))...)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
