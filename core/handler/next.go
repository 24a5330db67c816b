package handler

import "net/http"

// Next is the continuation handed to each middleware: the middleware still
// waiting to run plus the endpoint that terminates the chain.
//
// Next is an immutable value. Running it never modifies the receiver, so a
// middleware may run it once (delegate), zero times (short-circuit), or more
// than once (retry) without corrupting the chain.
type Next[S any] struct {
	middleware []Middleware[S]
	endpoint   Endpoint[S]
}

// NewNext builds the initial continuation over the full middleware list.
func NewNext[S any](endpoint Endpoint[S], middleware []Middleware[S]) Next[S] {
	return Next[S]{
		middleware: middleware,
		endpoint:   endpoint,
	}
}

// Run executes the head of the remaining middleware with a continuation over
// the tail, or the terminal endpoint once the middleware is exhausted.
func (n Next[S]) Run(ctx *Context[S]) Response {
	if len(n.middleware) == 0 {
		if n.endpoint == nil {
			return func(w http.ResponseWriter, r *http.Request) error {
				return ServerError{Err: ErrNoEndpoint}
			}
		}
		return n.endpoint.Call(ctx)
	}

	head := n.middleware[0]
	return head.Handle(ctx, Next[S]{
		middleware: n.middleware[1:],
		endpoint:   n.endpoint,
	})
}

// Remaining returns how many middleware are still ahead of the endpoint.
func (n Next[S]) Remaining() int {
	return len(n.middleware)
}
