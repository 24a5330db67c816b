package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
)

type clientIPContextKey struct{}

// DefaultIPHeaders are consulted in order before falling back to RemoteAddr.
var DefaultIPHeaders = []string{
	"CF-Connecting-IP",
	"True-Client-IP",
	"X-Real-IP",
	"X-Forwarded-For",
}

// ClientIPConfig configures the client IP middleware.
type ClientIPConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.RequestContext) bool

	// Headers lists proxy headers to trust, in order (default: DefaultIPHeaders).
	// Set it to an empty non-nil slice to use RemoteAddr only.
	Headers []string

	// StoreInHeader echoes the IP in the HeaderName response header.
	StoreInHeader bool

	// HeaderName for StoreInHeader (default: "X-Client-IP")
	HeaderName string

	// ValidateFunc rejects the request with 403 when it returns an error.
	ValidateFunc func(ctx handler.RequestContext, ip string) error
}

// ClientIP resolves the client IP and stores it in the request context.
func ClientIP[S any]() handler.Middleware[S] {
	return ClientIPWithConfig[S](ClientIPConfig{})
}

// ClientIPWithConfig creates a client IP middleware with custom configuration.
func ClientIPWithConfig[S any](cfg ClientIPConfig) handler.Middleware[S] {
	if cfg.Headers == nil {
		cfg.Headers = DefaultIPHeaders
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Client-IP"
	}

	return handler.MiddlewareFunc[S](func(ctx *handler.Context[S], next handler.Next[S]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		ip := ResolveClientIP(ctx.Request(), cfg.Headers...)
		ctx.SetValue(clientIPContextKey{}, ip)

		if cfg.ValidateFunc != nil {
			if err := cfg.ValidateFunc(ctx, ip); err != nil {
				return response.Error(response.ErrForbidden.WithError(err))
			}
		}

		resp := next.Run(ctx)
		if !cfg.StoreInHeader {
			return resp
		}

		return func(w http.ResponseWriter, r *http.Request) error {
			w.Header().Set(cfg.HeaderName, ip)
			return resp(w, r)
		}
	})
}

// GetClientIP returns the IP stored by the ClientIP middleware.
func GetClientIP(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}

// ResolveClientIP returns the first valid address found in headers, then
// falls back to the host part of RemoteAddr. For X-Forwarded-For the
// leftmost valid entry wins.
func ResolveClientIP(r *http.Request, headers ...string) string {
	for _, name := range headers {
		for candidate := range strings.SplitSeq(r.Header.Get(name), ",") {
			if addr, err := netip.ParseAddr(strings.TrimSpace(candidate)); err == nil {
				return addr.Unmap().String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Unmap().String()
	}
	return host
}
