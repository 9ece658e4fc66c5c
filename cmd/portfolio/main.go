// Command portfolio serves the personal portfolio site.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/portfolio/middlewares"
	"github.com/dmitrymomot/portfolio/pkg/db"
	"github.com/dmitrymomot/portfolio/pkg/job"
	"github.com/dmitrymomot/portfolio/pkg/logger"
	"github.com/dmitrymomot/portfolio/site/content"
	"github.com/dmitrymomot/portfolio/site/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Personal portfolio site",
		Long: `Serves a single-page bilingual portfolio with a theme toggle and a
contact form. All settings come from the environment.

Commands:
  serve    - run the HTTP server
  migrate  - apply database migrations
  i18n     - translation tooling`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newI18nCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
			if cfg.Log.Sentry.DSN != "" {
				defer sentry.Flush(2 * time.Second)
			}

			srv, err := buildServer(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("startup failed", slog.String("error", err.Error()))
				return err
			}
			return srv.run(cmd.Context(), cfg.Server.Addr)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the site and job queue migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return fmt.Errorf("%w: DATABASE_URL is required", ErrInvalidConfig)
			}
			log := logger.New(cfg.Log)
			ctx := cmd.Context()

			pool, err := db.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(ctx, pool, migrations.FS, cfg.Database.MigrationsTable, log); err != nil {
				return err
			}
			return job.Migrate(ctx, pool, log)
		},
	}
}

func newI18nCmd() *cobra.Command {
	i18nCmd := &cobra.Command{
		Use:   "i18n",
		Short: "Translation tooling",
	}
	i18nCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report keys missing from any language",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, err := content.LoadTranslations(logger.NewNope())
			if err != nil {
				return err
			}
			missing := content.Parity(tr)
			if len(missing) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "all languages complete")
				return nil
			}

			langs := make([]string, 0, len(missing))
			for lang := range missing {
				langs = append(langs, lang)
			}
			slices.Sort(langs)
			for _, lang := range langs {
				for _, key := range missing[lang] {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: missing %s\n", lang, key)
				}
			}
			return fmt.Errorf("i18n: %d language(s) incomplete", len(missing))
		},
	})
	return i18nCmd
}
