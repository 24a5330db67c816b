package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.RequestContext) bool

	// Limiter is required.
	Limiter ratelimiter.RateLimiter

	// KeyExtractor picks the bucket key (default: client IP, then RemoteAddr)
	KeyExtractor func(ctx handler.RequestContext) string

	// ErrorHandler builds the response for denied requests (default: 429).
	ErrorHandler func(ctx handler.RequestContext, result *ratelimiter.Result) handler.Response

	// DisableHeaders omits the X-RateLimit-* and Retry-After headers.
	DisableHeaders bool
}

// RateLimit creates a rate limiting middleware. It panics when cfg.Limiter is nil.
//
// Limiter failures are reported as a 500 server error so the cause is logged
// but not shown to the client.
func RateLimit[S any](cfg RateLimitConfig) handler.Middleware[S] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx handler.RequestContext) string {
			if ip, ok := GetClientIP(ctx); ok {
				return ip
			}
			return ResolveClientIP(ctx.Request())
		}
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(_ handler.RequestContext, result *ratelimiter.Result) handler.Response {
			err := response.ErrTooManyRequests
			if retry := result.RetryAfter(); retry > 0 {
				err = err.WithDetails(map[string]any{"retry_after": retrySeconds(result)})
			}
			return response.Error(err)
		}
	}

	return handler.MiddlewareFunc[S](func(ctx *handler.Context[S], next handler.Next[S]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		result, err := cfg.Limiter.Allow(ctx, cfg.KeyExtractor(ctx))
		if err != nil {
			return response.Error(handler.ServerError{Err: err})
		}

		var resp handler.Response
		if result.Allowed() {
			resp = next.Run(ctx)
		} else {
			resp = cfg.ErrorHandler(ctx, result)
		}

		if cfg.DisableHeaders {
			return resp
		}
		return withRateLimitHeaders(resp, result)
	})
}

func withRateLimitHeaders(resp handler.Response, result *ratelimiter.Result) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		if !result.Allowed() {
			h.Set("Retry-After", strconv.Itoa(retrySeconds(result)))
		}
		return resp(w, r)
	}
}

// retrySeconds rounds up so clients never retry too early.
func retrySeconds(result *ratelimiter.Result) int {
	return int(math.Ceil(result.RetryAfter().Seconds()))
}
