package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/middleware"
)

type user struct {
	Name string
}

func whoami(ctx *Ctx) handler.Response {
	u, ok := middleware.GetPrincipal[*user](ctx)
	if !ok {
		return response.ErrorStatus(http.StatusInternalServerError)
	}
	return response.String(u.Name)
}

func TestBearerAuth(t *testing.T) {
	t.Parallel()

	h := service(whoami, middleware.BearerAuth[struct{}](middleware.StaticTokens(map[string]any{
		"s3cret": &user{Name: "alice"},
	})))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer s3cret", http.StatusOK, "alice"},
		{"scheme is case-insensitive", "bearer s3cret", http.StatusOK, "alice"},
		{"missing", "", http.StatusUnauthorized, "missing bearer token"},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized, "missing bearer token"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, "invalid bearer token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(t, h, req)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, `Bearer realm="api"`, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestBearerAuthWithConfig(t *testing.T) {
	t.Parallel()

	h := service(whoami, middleware.BearerAuthWithConfig[struct{}](middleware.BearerAuthConfig{
		Realm:          "ws",
		TokenExtractor: middleware.TokenFromQuery("access_token"),
		Validator: func(ctx context.Context, token string) (any, error) {
			return &user{Name: "token:" + token}, nil
		},
		Skip: func(ctx handler.RequestContext) bool {
			return ctx.Request().Method == http.MethodPost
		},
	}))

	w := get(t, h, "/test?access_token=abc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token:abc", w.Body.String())

	w = get(t, h, "/test")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Bearer realm="ws"`, w.Header().Get("WWW-Authenticate"))

	// skipped: no principal is stored
	w = serve(t, h, httptest.NewRequest(http.MethodPost, "/test", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBearerAuthRequiresValidator(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		middleware.BearerAuth[struct{}](nil)
	})
}
