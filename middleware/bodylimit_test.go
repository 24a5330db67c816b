package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/middleware"
)

func echoBody(ctx *Ctx) handler.Response {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return response.Error(err)
	}
	return response.Bytes(body, "text/plain")
}

func TestBodyLimitContentLength(t *testing.T) {
	t.Parallel()

	h := service(echoBody, middleware.BodyLimitWithSize[struct{}](10))

	w := serve(t, h, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("short")))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "short", w.Body.String())

	w = serve(t, h, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("x", 11))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "Request body too large")
}

func TestBodyLimitStreamingBody(t *testing.T) {
	t.Parallel()

	h := service(echoBody, middleware.BodyLimitWithSize[struct{}](10))

	t.Run("over the limit", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/test", io.NopCloser(strings.NewReader(strings.Repeat("x", 25))))
		req.ContentLength = -1
		w := serve(t, h, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("exactly at the limit", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/test", io.NopCloser(strings.NewReader(strings.Repeat("x", 10))))
		req.ContentLength = -1
		w := serve(t, h, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Body.String(), 10)
	})
}

func TestBodyLimitContentTypeLimit(t *testing.T) {
	t.Parallel()

	h := service(echoBody, middleware.BodyLimitWithConfig[struct{}](middleware.BodyLimitConfig{
		MaxSize:          5,
		ContentTypeLimit: map[string]int64{"application/json": 20},
	}))

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"name":"waypoint"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	assert.Equal(t, http.StatusOK, serve(t, h, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("plain text"))
	req.Header.Set("Content-Type", "text/plain")
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(t, h, req).Code)
}

func TestBodyLimitSkip(t *testing.T) {
	t.Parallel()

	h := service(echoBody, middleware.BodyLimitWithConfig[struct{}](middleware.BodyLimitConfig{
		MaxSize: 1,
		Skip:    func(handler.RequestContext) bool { return true },
	}))

	w := serve(t, h, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("anything")))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anything", w.Body.String())
}

func TestBodyLimitMessage(t *testing.T) {
	t.Parallel()

	app := service(echoBody, middleware.BodyLimitWithSize[struct{}](2*middleware.KB))
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("x", 3000)))
	w := serve(t, app, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "2.93 KB")
	assert.Contains(t, w.Body.String(), "2.00 KB")
}
