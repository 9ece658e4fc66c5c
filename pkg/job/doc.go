// Package job runs background tasks on River, backed by the same PostgreSQL
// pool as the rest of the application.
//
// All tasks share one River job kind. The task name and a JSON payload travel
// in the job arguments and a registry routes them to typed handlers:
//
//	type Notify struct{ mailer *mailer.Mailer }
//
//	func (t *Notify) Name() string { return "contact:notify" }
//	func (t *Notify) Handle(ctx context.Context, p NotifyPayload) error { ... }
//
//	m, err := job.NewManager(pool,
//		job.WithTask[NotifyPayload](&Notify{mailer: m}),
//		job.WithPeriodicTask(&Purge{...}),
//		job.WithLogger(log),
//	)
//
// Periodic tasks declare a standard five-field cron expression, parsed with
// robfig/cron. EnqueueTx inserts a job inside the caller's transaction, so it
// becomes visible only when the surrounding write commits.
package job
