package handler

import (
	"context"
	"maps"
	"net/http"
	"time"
)

// RequestContext is the state-independent view of a request context.
// Middleware configuration callbacks take it so they work for any state type.
type RequestContext interface {
	context.Context
	Request() *http.Request
	Param(key string) string
	LookupParam(key string) (string, bool)
	Pattern() string
	SetValue(key, val any)
}

// Context is the per-request bundle handed to middleware and endpoints:
// the shared application state, the raw request and the captured path params.
// It delegates all context.Context methods to the request's context.
type Context[S any] struct {
	state   S
	r       *http.Request
	params  map[string]string
	pattern string
}

var _ RequestContext = (*Context[struct{}])(nil)

// NewContext creates a Context for a single request.
func NewContext[S any](state S, r *http.Request, params map[string]string, pattern string) *Context[S] {
	return &Context[S]{
		state:   state,
		r:       r,
		params:  params,
		pattern: pattern,
	}
}

// State returns the shared application state.
// The state is shared by every request; any mutation must be synchronized by the state itself.
func (c *Context[S]) State() S {
	return c.state
}

// Request returns the *http.Request associated with the context.
func (c *Context[S]) Request() *http.Request {
	return c.r
}

// Param returns the value of the path parameter by key, or "" if it was not captured.
func (c *Context[S]) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// LookupParam returns the value of the path parameter and whether it was captured.
func (c *Context[S]) LookupParam(key string) (string, bool) {
	if c.params == nil {
		return "", false
	}
	v, ok := c.params[key]
	return v, ok
}

// Params returns a copy of all captured path parameters.
func (c *Context[S]) Params() map[string]string {
	out := make(map[string]string, len(c.params))
	maps.Copy(out, c.params)
	return out
}

// Pattern returns the registered pattern that matched the request, if any.
func (c *Context[S]) Pattern() string {
	return c.pattern
}

// SetValue stores a request-scoped value in the request's context.
func (c *Context[S]) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}

// Deadline returns the time when work done on behalf of this context
// should be canceled. Delegates to r.Context().
func (c *Context[S]) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when work done on behalf of this
// context should be canceled. Delegates to r.Context().
func (c *Context[S]) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed. Delegates to r.Context().
func (c *Context[S]) Err() error {
	return c.r.Context().Err()
}

// Value returns the value associated with this context for key, or nil
// if no value is associated with key. Delegates to r.Context().
func (c *Context[S]) Value(key any) any {
	return c.r.Context().Value(key)
}
