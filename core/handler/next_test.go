package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/handler"
)

type recorder struct {
	events []string
}

func tracing(rec *recorder, name string) handler.Middleware[*recorder] {
	return handler.MiddlewareFunc[*recorder](func(ctx *handler.Context[*recorder], next handler.Next[*recorder]) handler.Response {
		rec.events = append(rec.events, name+"-before")
		resp := next.Run(ctx)
		rec.events = append(rec.events, name+"-after")
		return resp
	})
}

func okEndpoint(rec *recorder, body string) handler.Endpoint[*recorder] {
	return handler.EndpointFunc[*recorder](func(ctx *handler.Context[*recorder]) handler.Response {
		rec.events = append(rec.events, "endpoint")
		return func(w http.ResponseWriter, r *http.Request) error {
			_, err := w.Write([]byte(body))
			return err
		}
	})
}

func render(t *testing.T, resp handler.Response, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	require.NotNil(t, resp)
	w := httptest.NewRecorder()
	require.NoError(t, resp(w, r))
	return w
}

func TestNextRunsMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := handler.NewContext(rec, req, nil, "/")

	next := handler.NewNext(okEndpoint(rec, "done"), []handler.Middleware[*recorder]{
		tracing(rec, "first"),
		tracing(rec, "second"),
		tracing(rec, "third"),
	})
	assert.Equal(t, 3, next.Remaining())

	w := render(t, next.Run(ctx), req)

	assert.Equal(t, "done", w.Body.String())
	assert.Equal(t, []string{
		"first-before",
		"second-before",
		"third-before",
		"endpoint",
		"third-after",
		"second-after",
		"first-after",
	}, rec.events)
}

func TestNextShortCircuit(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := handler.NewContext(rec, req, nil, "/")

	deny := handler.MiddlewareFunc[*recorder](func(ctx *handler.Context[*recorder], next handler.Next[*recorder]) handler.Response {
		rec.events = append(rec.events, "deny")
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusForbidden)
			return nil
		}
	})

	next := handler.NewNext(okEndpoint(rec, "never"), []handler.Middleware[*recorder]{
		tracing(rec, "outer"),
		deny,
		tracing(rec, "inner"),
	})

	w := render(t, next.Run(ctx), req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, []string{"outer-before", "deny", "outer-after"}, rec.events)
}

func TestNextIsReusable(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := handler.NewContext(rec, req, nil, "/")

	retry := handler.MiddlewareFunc[*recorder](func(ctx *handler.Context[*recorder], next handler.Next[*recorder]) handler.Response {
		_ = next.Run(ctx)
		return next.Run(ctx)
	})

	next := handler.NewNext(okEndpoint(rec, "again"), []handler.Middleware[*recorder]{retry, tracing(rec, "inner")})
	w := render(t, next.Run(ctx), req)

	assert.Equal(t, "again", w.Body.String())
	assert.Equal(t, []string{
		"inner-before", "endpoint", "inner-after",
		"inner-before", "endpoint", "inner-after",
	}, rec.events)
}

func TestNextWithoutMiddlewareCallsEndpoint(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := handler.NewContext(rec, req, nil, "/")

	w := render(t, handler.NewNext(okEndpoint(rec, "bare"), nil).Run(ctx), req)

	assert.Equal(t, "bare", w.Body.String())
	assert.Equal(t, []string{"endpoint"}, rec.events)
}

func TestZeroNextRendersServerError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := handler.NewContext(struct{}{}, req, nil, "")

	var next handler.Next[struct{}]
	err := next.Run(ctx)(httptest.NewRecorder(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, handler.ErrNoEndpoint)

	var se handler.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode())
}

func TestPostProcessingWrapsResponse(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := handler.NewContext(rec, req, nil, "/")

	header := func(value string) handler.Middleware[*recorder] {
		return handler.MiddlewareFunc[*recorder](func(ctx *handler.Context[*recorder], next handler.Next[*recorder]) handler.Response {
			resp := next.Run(ctx)
			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Add("X-Trail", value)
				return resp(w, r)
			}
		})
	}

	next := handler.NewNext(okEndpoint(rec, "ok"), []handler.Middleware[*recorder]{header("a"), header("b")})
	w := render(t, next.Run(ctx), req)

	assert.Equal(t, []string{"a", "b"}, w.Header().Values("X-Trail"))
}
