package handler

import "net/http"

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the framework's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// Endpoint consumes a request context and produces a response.
// Endpoints are shared across concurrent requests and must not keep per-request state.
type Endpoint[S any] interface {
	Call(ctx *Context[S]) Response
}

// EndpointFunc adapts an ordinary function to the Endpoint interface.
type EndpointFunc[S any] func(ctx *Context[S]) Response

// Call implements Endpoint.
func (f EndpointFunc[S]) Call(ctx *Context[S]) Response {
	return f(ctx)
}

// Middleware wraps endpoint execution with cross-cutting behavior.
// It either produces a response on its own (short-circuit) or delegates to next.
type Middleware[S any] interface {
	Handle(ctx *Context[S], next Next[S]) Response
}

// MiddlewareFunc adapts an ordinary function to the Middleware interface.
type MiddlewareFunc[S any] func(ctx *Context[S], next Next[S]) Response

// Handle implements Middleware.
func (f MiddlewareFunc[S]) Handle(ctx *Context[S], next Next[S]) Response {
	return f(ctx, next)
}

// ErrorHandler renders an error returned by a Response.
// It runs only when nothing has been written to w yet.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
