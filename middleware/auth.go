package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

type principalContextKey struct{}

// TokenValidator checks a bearer token and returns the authenticated
// principal. Any error rejects the request with 401.
type TokenValidator func(ctx context.Context, token string) (any, error)

// BearerAuthConfig configures the bearer token middleware.
type BearerAuthConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.RequestContext) bool

	// Validator is required.
	Validator TokenValidator

	// TokenExtractor reads the token (default: "Authorization: Bearer <token>")
	TokenExtractor func(ctx handler.RequestContext) string

	// Realm for the WWW-Authenticate challenge (default: "api")
	Realm string
}

// BearerAuth authenticates requests with validator.
func BearerAuth[S any](validator TokenValidator) handler.Middleware[S] {
	return BearerAuthWithConfig[S](BearerAuthConfig{Validator: validator})
}

// BearerAuthWithConfig creates a bearer token middleware with custom configuration.
// It panics when cfg.Validator is nil.
func BearerAuthWithConfig[S any](cfg BearerAuthConfig) handler.Middleware[S] {
	if cfg.Validator == nil {
		panic("bearer auth middleware: validator is required")
	}
	if cfg.TokenExtractor == nil {
		cfg.TokenExtractor = TokenFromAuthHeader
	}
	if cfg.Realm == "" {
		cfg.Realm = "api"
	}
	challenge := `Bearer realm="` + cfg.Realm + `"`

	unauthorized := func(err error) handler.Response {
		return response.WithHeader(
			response.Error(response.ErrUnauthorized.WithMessage(err.Error())),
			"WWW-Authenticate", challenge,
		)
	}

	return handler.MiddlewareFunc[S](func(ctx *handler.Context[S], next handler.Next[S]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		token := cfg.TokenExtractor(ctx)
		if token == "" {
			return unauthorized(ErrMissingToken)
		}

		principal, err := cfg.Validator(ctx, token)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return response.Error(err)
			}
			return unauthorized(ErrInvalidToken)
		}

		ctx.SetValue(principalContextKey{}, principal)
		return next.Run(ctx)
	})
}

// GetPrincipal returns the principal stored by BearerAuth, asserted to T.
func GetPrincipal[T any](ctx context.Context) (T, bool) {
	p, ok := ctx.Value(principalContextKey{}).(T)
	return p, ok
}

// TokenFromAuthHeader extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func TokenFromAuthHeader(ctx handler.RequestContext) string {
	scheme, token, ok := strings.Cut(ctx.Request().Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// TokenFromQuery extracts the token from a query parameter, for clients such
// as browsers opening a WebSocket that cannot set headers.
func TokenFromQuery(param string) func(ctx handler.RequestContext) string {
	return func(ctx handler.RequestContext) string {
		return ctx.Request().URL.Query().Get(param)
	}
}

// StaticTokens validates against a fixed token to principal map.
func StaticTokens(tokens map[string]any) TokenValidator {
	return func(_ context.Context, token string) (any, error) {
		if p, ok := tokens[token]; ok {
			return p, nil
		}
		return nil, ErrInvalidToken
	}
}
