// Command waypoint-demo serves a small notes API built on waypoint. It wires
// configuration, logging, the middleware stack, rate limiting and graceful
// shutdown the way a production service would.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/core/config"
	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/health"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/server"
	"github.com/dmitrymomot/waypoint/middleware"
	"github.com/dmitrymomot/waypoint/pkg/ratelimiter"
)

// AppConfig is the demo's own settings.
type AppConfig struct {
	Env         string   `env:"APP_ENV" envDefault:"development"`
	APITokens   []string `env:"API_TOKENS" envSeparator:","`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	BodyLimit   int64    `env:"BODY_LIMIT" envDefault:"1048576"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg   AppConfig
		logCfg   logger.Config
		srvCfg   server.Config
		limitCfg ratelimiter.Config
		redisCfg ratelimiter.RedisConfig
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&logCfg) },
		func() error { return config.Load(&srvCfg) },
		func() error { return config.Load(&limitCfg) },
		func() error { return config.Load(&redisCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	log := logger.New(
		logger.WithConfig(logCfg),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)

	g, ctx := errgroup.WithContext(ctx)

	store, checks, err := newLimiterStore(ctx, g, redisCfg, log)
	if err != nil {
		return err
	}
	limiter, err := ratelimiter.NewBucket(store, limitCfg)
	if err != nil {
		return err
	}

	app := newApp(appCfg, log, limiter, checks)
	for _, r := range app.Routes() {
		log.Debug("route", "method", r.Method, logger.Route(r.Pattern))
	}

	srv, err := server.NewFromConfig(srvCfg, server.WithLogger(log))
	if err != nil {
		return err
	}
	g.Go(srv.Run(ctx, app.Service()))

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newLimiterStore uses Redis when REDIS_URL is set so limits are shared
// between replicas, and an in-process store otherwise.
func newLimiterStore(ctx context.Context, g *errgroup.Group, cfg ratelimiter.RedisConfig, log *slog.Logger) (ratelimiter.Store, map[string]health.Check, error) {
	if cfg.ConnectionURL == "" {
		store := ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(log))
		g.Go(store.Run(ctx))
		return store, nil, nil
	}

	client, err := ratelimiter.ConnectRedis(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	g.Go(func() error {
		<-ctx.Done()
		return client.Close()
	})
	log.Info("rate limiter backed by redis", logger.Component("ratelimiter"))
	store := ratelimiter.NewRedisStore(client, cfg.KeyPrefix)
	return store, map[string]health.Check{"redis": store.Healthcheck}, nil
}

func newApp(cfg AppConfig, log *slog.Logger, limiter ratelimiter.RateLimiter, checks map[string]health.Check) *waypoint.App[*State] {
	security := middleware.StrictSecurity
	if cfg.Env == "development" {
		security = middleware.BalancedSecurity
		security.IsDevelopment = true
	}

	app := waypoint.New(NewState(),
		waypoint.WithLogger[*State](log),
		waypoint.WithMiddleware(
			middleware.RequestID[*State](),
			middleware.ClientIP[*State](),
			middleware.Logging[*State](log),
			middleware.CORSWithConfig[*State](middleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}),
			middleware.SecurityHeadersWithConfig[*State](security),
			middleware.BodyLimitWithSize[*State](cfg.BodyLimit),
			middleware.RateLimit[*State](middleware.RateLimitConfig{
				Limiter: limiter,
				Skip: func(ctx handler.RequestContext) bool {
					return strings.HasPrefix(ctx.Pattern(), "/health/")
				},
			}),
			middleware.Compress[*State](),
		),
	)
	registerRoutes(app, cfg, log, checks)
	return app
}
