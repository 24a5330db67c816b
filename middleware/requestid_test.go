package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/middleware"
)

func TestRequestIDDefault(t *testing.T) {
	t.Parallel()

	var captured string
	h := service(func(ctx *Ctx) handler.Response {
		id, ok := middleware.GetRequestID(ctx)
		assert.True(t, ok)
		captured = id
		return response.NoContent()
	}, middleware.RequestID[struct{}]())

	w := get(t, h, "/test")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
	_, err := uuid.Parse(captured)
	assert.NoError(t, err)
}

func TestRequestIDUniquePerRequest(t *testing.T) {
	t.Parallel()

	h := service(ok, middleware.RequestID[struct{}]())

	seen := make(map[string]bool)
	for range 20 {
		id := get(t, h, "/test").Header().Get("X-Request-ID")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRequestIDWithConfig(t *testing.T) {
	t.Parallel()

	mw := middleware.RequestIDWithConfig[struct{}](middleware.RequestIDConfig{
		HeaderName:  "X-Trace-ID",
		UseExisting: true,
		Generator:   func() string { return "generated" },
	})
	h := service(ok, mw)

	t.Run("reuses incoming id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Trace-ID", "upstream-1")
		w := serve(t, h, req)
		assert.Equal(t, "upstream-1", w.Header().Get("X-Trace-ID"))
	})

	t.Run("generates when absent", func(t *testing.T) {
		t.Parallel()
		w := get(t, h, "/test")
		assert.Equal(t, "generated", w.Header().Get("X-Trace-ID"))
		assert.Empty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDOnErrorResponses(t *testing.T) {
	t.Parallel()

	h := service(ok, middleware.RequestID[struct{}]())

	w := get(t, h, "/missing")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDSkip(t *testing.T) {
	t.Parallel()

	h := service(func(ctx *Ctx) handler.Response {
		_, ok := middleware.GetRequestID(ctx)
		assert.False(t, ok)
		return response.NoContent()
	}, middleware.RequestIDWithConfig[struct{}](middleware.RequestIDConfig{
		Skip: func(handler.RequestContext) bool { return true },
	}))

	w := get(t, h, "/test")
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)

	h := service(func(ctx *Ctx) handler.Response {
		log.InfoContext(ctx, "inside")
		return response.NoContent()
	}, middleware.RequestIDWithConfig[struct{}](middleware.RequestIDConfig{
		Generator: func() string { return "req-42" },
	}))
	get(t, h, "/test")

	require.Contains(t, buf.String(), `"request_id":"req-42"`)

	_, found := middleware.RequestIDExtractor(context.Background())
	assert.False(t, found)
}
