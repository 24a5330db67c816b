package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
)

type Ctx = handler.Context[struct{}]

func ok(*Ctx) handler.Response {
	return response.String("ok")
}

// service mounts ep at GET and POST /test behind mw.
func service(ep handler.EndpointFunc[struct{}], mw ...handler.Middleware[struct{}]) http.Handler {
	app := waypoint.NewStateless(waypoint.WithMiddleware(mw...))
	app.At("/test").Get(ep).Post(ep)
	return app.Service()
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, h, httptest.NewRequest(http.MethodGet, target, nil))
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(b)
}
