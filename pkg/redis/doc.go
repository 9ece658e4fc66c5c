// Package redis opens go-redis clients with startup retries and exposes
// health check and shutdown hooks for the application runtime.
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	if err != nil {
//		return err
//	}
//
//	app := portfolio.New(
//		portfolio.WithHealthChecks(portfolio.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//	app.Run(":8080", portfolio.WithShutdownHook(redis.Shutdown(client)))
//
// Both redis:// and rediss:// (TLS) URLs are accepted.
package redis
