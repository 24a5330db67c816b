package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// WithHeaders sets headers before resp is rendered.
func WithHeaders(resp handler.Response, headers map[string]string) handler.Response {
	if resp == nil || len(headers) == 0 {
		return resp
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		h := w.Header()
		for k, v := range headers {
			h.Set(k, v)
		}
		return resp(w, r)
	}
}

// WithHeader sets a single header before resp is rendered.
func WithHeader(resp handler.Response, key, value string) handler.Response {
	return WithHeaders(resp, map[string]string{key: value})
}

// WithCookie sets cookie before resp is rendered.
func WithCookie(resp handler.Response, cookie *http.Cookie) handler.Response {
	if resp == nil || cookie == nil {
		return resp
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		http.SetCookie(w, cookie)
		return resp(w, r)
	}
}

// WithCache sets caching headers for maxAge. A non-positive maxAge disables caching.
func WithCache(resp handler.Response, maxAge time.Duration) handler.Response {
	if resp == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		h := w.Header()
		if maxAge <= 0 {
			h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
			return resp(w, r)
		}
		h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
		h.Set("Expires", time.Now().Add(maxAge).UTC().Format(http.TimeFormat))
		return resp(w, r)
	}
}
