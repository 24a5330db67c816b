// Package handler provides the request processing abstractions shared by the
// router, the dispatch service and the middleware: responses, endpoints,
// middleware, the Next continuation and the per-request Context.
//
// # Core Types
//
//	// Response renders an HTTP response
//	type Response func(w http.ResponseWriter, r *http.Request) error
//
//	// Endpoint produces a response for a matched route
//	type Endpoint[S any] interface {
//		Call(ctx *Context[S]) Response
//	}
//
//	// Middleware wraps endpoint execution
//	type Middleware[S any] interface {
//		Handle(ctx *Context[S], next Next[S]) Response
//	}
//
// S is the application state type. The same state value is handed to every
// request through Context.State; the framework never mutates or locks it.
// A state that needs mutation carries its own synchronization:
//
//	type AppState struct {
//		mu    sync.Mutex
//		hits  map[string]int
//	}
//
//	func (s *AppState) Hit(path string) int {
//		s.mu.Lock()
//		defer s.mu.Unlock()
//		s.hits[path]++
//		return s.hits[path]
//	}
//
// # Endpoints
//
//	hello := handler.EndpointFunc[*AppState](func(ctx *handler.Context[*AppState]) handler.Response {
//		name := ctx.Param("name")
//		return func(w http.ResponseWriter, r *http.Request) error {
//			_, err := w.Write([]byte("Hello, " + name))
//			return err
//		}
//	})
//
// # Middleware and the Next continuation
//
// Next is an explicit, immutable continuation over the remaining middleware
// and the terminal endpoint. A middleware runs pre-processing, calls
// next.Run(ctx) to delegate, and may wrap the returned Response for
// post-processing. Not calling next.Run short-circuits the chain: no
// downstream middleware and no endpoint runs.
//
//	timing := handler.MiddlewareFunc[*AppState](func(ctx *handler.Context[*AppState], next handler.Next[*AppState]) handler.Response {
//		start := time.Now()
//		resp := next.Run(ctx)
//		return func(w http.ResponseWriter, r *http.Request) error {
//			w.Header().Set("X-Elapsed", time.Since(start).String())
//			return resp(w, r)
//		}
//	})
//
// With middleware A then B registered, pre-steps run A, B, endpoint and
// post-steps run B, A.
//
// # Parameters
//
// Context.Param returns the raw captured string. ParamAs parses it and fails
// with a ClientError (rendered as 400) when the parameter is missing or
// malformed:
//
//	id, err := handler.ParamAs[int64](ctx, "id")
//	if err != nil {
//		return response.Error(err)
//	}
//
// # Errors
//
// ClientError and ServerError carry an HTTP status through StatusCode() and
// are mapped to 4xx and 5xx responses by the error handler.
package handler
