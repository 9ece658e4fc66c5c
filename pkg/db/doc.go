// Package db opens the PostgreSQL pool used by the contact inbox and the job
// queue, and applies the embedded goose migrations.
//
//	pool, err := db.Open(ctx, cfg.Database)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.Database.MigrationsTable, log); err != nil {
//		return err
//	}
//
// Healthcheck plugs into the readiness endpoint, Shutdown into the app's
// shutdown hooks, and WithTx wraps a unit of work that must commit or roll
// back as a whole.
package db
