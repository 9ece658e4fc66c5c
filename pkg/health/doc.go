// Package health serves liveness and readiness probes.
//
// Liveness always answers OK while the process runs. Readiness runs every
// registered [Probe] concurrently under a shared deadline and answers 503 if
// any of them fails:
//
//	r.Get("/health/live", health.Live())
//	r.Get("/health/ready", health.Ready(health.Probes{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Responses are plain text unless the client asks for JSON through the
// Accept header or ?format=json.
package health
