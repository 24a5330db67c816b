// Package ratelimiter implements token bucket rate limiting over a pluggable
// Store.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request consumes one or more tokens; when the bucket
// does not hold enough the request is denied and nothing is taken.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       100,
//		RefillRate:     10,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := limiter.Allow(ctx, clientIP)
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		// retry after res.RetryAfter()
//	}
//
// # Stores
//
// MemoryStore keeps state in process memory. Its cleanup loop evicts idle
// buckets and is meant to be run under an errgroup:
//
//	g.Go(store.Run(ctx))
//
// RedisStore keeps state in Redis and applies refill and consumption in a
// single Lua script, so several instances can share one limit. ConnectRedis
// builds a client from a redis:// or rediss:// URL.
//
// The middleware package exposes a Bucket as request middleware.
package ratelimiter
