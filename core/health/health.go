package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
)

// DefaultTimeout bounds a readiness check when none is configured.
const DefaultTimeout = 5 * time.Second

// ErrNotReady is wrapped by readiness failures.
var ErrNotReady = errors.New("service not ready")

// Check verifies one dependency, e.g. RedisStore.Healthcheck.
type Check func(ctx context.Context) error

// Liveness reports that the process is up. It checks nothing.
func Liveness[S any](*handler.Context[S]) handler.Response {
	return response.String("ALIVE")
}

// NoContent answers 204, for high-frequency pings.
func NoContent[S any](*handler.Context[S]) handler.Response {
	return response.NoContent()
}

// Readiness runs every check concurrently and answers "READY", or 503 with
// the names of the failed checks. Failures are logged, not shown to callers.
//
//	app.At("/health/ready").Get(health.Readiness[*State](log, map[string]health.Check{
//		"redis": store.Healthcheck,
//	}))
func Readiness[S any](log *slog.Logger, checks map[string]Check) handler.EndpointFunc[S] {
	return ReadinessWithTimeout[S](log, DefaultTimeout, checks)
}

// ReadinessWithTimeout is Readiness with a custom check timeout.
func ReadinessWithTimeout[S any](log *slog.Logger, timeout time.Duration, checks map[string]Check) handler.EndpointFunc[S] {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("health"))

	return func(ctx *handler.Context[S]) handler.Response {
		failed := runChecks(ctx, timeout, checks, log)
		if len(failed) > 0 {
			return response.Error(response.ErrServiceUnavailable.
				WithError(fmt.Errorf("%w: %v", ErrNotReady, failed)).
				WithDetails(map[string]any{"failed": failed}))
		}
		return response.String("READY")
	}
}

func runChecks(ctx context.Context, timeout time.Duration, checks map[string]Check, log *slog.Logger) []string {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		failed []string
		g      errgroup.Group
	)
	for name, check := range checks {
		g.Go(func() error {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", slog.String("check", name), logger.Error(err))
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	slices.Sort(failed)
	return failed
}
