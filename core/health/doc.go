// Package health provides liveness and readiness endpoints for orchestrators.
//
//	app.At("/health/live").Get(health.Liveness[*State])
//	app.At("/health/ready").Get(health.Readiness[*State](log, map[string]health.Check{
//		"redis": redisStore.Healthcheck,
//	}))
//
// Liveness never touches dependencies. Readiness runs its checks in
// parallel under a shared timeout and answers 503 when any of them fails.
package health
