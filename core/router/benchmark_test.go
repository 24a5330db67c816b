package router_test

import (
	"net/http"
	"testing"

	"github.com/dmitrymomot/waypoint/core/router"
)

func benchRouter() *router.Router[struct{}] {
	r := router.New[struct{}]()
	for _, p := range []string{
		"/",
		"/health",
		"/api/users",
		"/api/users/:id",
		"/api/users/:id/posts/:post",
		"/api/posts",
		"/admin/dashboard",
		"/admin/settings",
		"/static/*path",
	} {
		r.At(p).Get(named(p))
	}
	r.Freeze()
	return r
}

func BenchmarkRouterStatic(b *testing.B) {
	r := benchRouter()
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		_, _ = r.Route(http.MethodGet, "/admin/dashboard")
	}
}

func BenchmarkRouterParams(b *testing.B) {
	r := benchRouter()
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		_, _ = r.Route(http.MethodGet, "/api/users/42/posts/7")
	}
}

func BenchmarkRouterCatchAll(b *testing.B) {
	r := benchRouter()
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		_, _ = r.Route(http.MethodGet, "/static/js/app/main.js")
	}
}

func BenchmarkRouterNotFound(b *testing.B) {
	r := benchRouter()
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		_, _ = r.Route(http.MethodGet, "/missing/path")
	}
}

func BenchmarkRouterParallel(b *testing.B) {
	r := benchRouter()
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = r.Route(http.MethodGet, "/api/users/42")
		}
	})
}
