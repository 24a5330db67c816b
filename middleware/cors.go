package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.RequestContext) bool

	// AllowOrigins lists allowed origins. Empty or "*" allows any origin.
	AllowOrigins []string

	// AllowMethods lists methods accepted in preflight requests.
	AllowMethods []string

	// AllowHeaders lists request headers accepted in preflight requests.
	AllowHeaders []string

	// ExposeHeaders lists response headers readable by the browser.
	ExposeHeaders []string

	AllowCredentials bool

	// MaxAge is how long, in seconds, a preflight result may be cached.
	MaxAge int

	// AllowOriginFunc overrides AllowOrigins. It returns the value for
	// Access-Control-Allow-Origin and whether the origin is allowed.
	AllowOriginFunc func(origin string) (string, bool)
}

// CORS allows cross-origin requests from any origin with the default
// method and header lists.
func CORS[S any]() handler.Middleware[S] {
	return CORSWithConfig[S](CORSConfig{})
}

// CORSWithConfig creates a CORS middleware with custom configuration.
//
// Preflight requests are answered directly with 204, or 403 when the origin
// or the requested method is not allowed; they never reach the router.
func CORSWithConfig[S any](cfg CORSConfig) handler.Middleware[S] {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-ID",
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")
	anyOrigin := len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*")

	resolve := func(origin string) (string, bool) {
		switch {
		case cfg.AllowOriginFunc != nil:
			return cfg.AllowOriginFunc(origin)
		case anyOrigin:
			return "*", true
		case slices.Contains(cfg.AllowOrigins, origin):
			return origin, true
		}
		return "", false
	}

	return handler.MiddlewareFunc[S](func(ctx *handler.Context[S], next handler.Next[S]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		req := ctx.Request()
		allowedOrigin, allowed := resolve(req.Header.Get("Origin"))
		credentials := cfg.AllowCredentials && allowedOrigin != "*"

		requestMethod := req.Header.Get("Access-Control-Request-Method")
		if req.Method == http.MethodOptions && requestMethod != "" {
			if !allowed || !slices.Contains(cfg.AllowMethods, requestMethod) {
				return func(w http.ResponseWriter, r *http.Request) error {
					w.WriteHeader(http.StatusForbidden)
					return nil
				}
			}

			requestHeaders := req.Header.Get("Access-Control-Request-Headers")
			return func(w http.ResponseWriter, r *http.Request) error {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allowedOrigin)
				h.Set("Access-Control-Allow-Methods", allowMethods)
				if requestHeaders != "" {
					h.Set("Access-Control-Allow-Headers", allowHeaders)
				}
				if credentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				h.Add("Vary", "Origin")
				h.Add("Vary", "Access-Control-Request-Method")
				h.Add("Vary", "Access-Control-Request-Headers")

				w.WriteHeader(http.StatusNoContent)
				return nil
			}
		}

		resp := next.Run(ctx)
		if !allowed {
			return resp
		}

		return func(w http.ResponseWriter, r *http.Request) error {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			if credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeaders != "" {
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
			}
			h.Add("Vary", "Origin")
			return resp(w, r)
		}
	})
}

// AllowOriginWildcard reflects any non-empty origin back. Unlike "*" it
// works together with AllowCredentials.
func AllowOriginWildcard() func(origin string) (string, bool) {
	return func(origin string) (string, bool) {
		return origin, origin != ""
	}
}

// AllowOriginSubdomain allows domain and all of its subdomains on any
// scheme and port. A leading "*." or "." in domain is ignored.
func AllowOriginSubdomain(domain string) func(origin string) (string, bool) {
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(domain, "*."), "."))
	suffix := "." + domain

	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return "", false
		}
		host := strings.ToLower(u.Hostname())
		if host == domain || strings.HasSuffix(host, suffix) {
			return origin, true
		}
		return "", false
	}
}
