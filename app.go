package waypoint

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
)

// App collects the routing table, the middleware list and the shared state
// of an application. Configure it from a single goroutine, then call Service
// to obtain the frozen, concurrency-safe request handler.
type App[S any] struct {
	state        S
	router       *router.Router[S]
	middleware   []handler.Middleware[S]
	errorHandler handler.ErrorHandler
	logger       *slog.Logger
}

// New creates an App around state. The state is shared by every request and
// is never mutated by the framework.
func New[S any](state S, opts ...Option[S]) *App[S] {
	a := &App[S]{
		state:        state,
		router:       router.New[S](),
		errorHandler: response.ErrorHandler,
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewStateless creates an App for applications without shared state.
func NewStateless(opts ...Option[struct{}]) *App[struct{}] {
	return New(struct{}{}, opts...)
}

// State returns the shared application state.
func (a *App[S]) State() S {
	return a.state
}

// At returns a route builder for path.
//
//	app.At("/users/:id").Get(getUser).Delete(deleteUser)
func (a *App[S]) At(path string) *router.Route[S] {
	return a.router.At(path)
}

// Use appends middleware. Middleware runs in the order it was added, around
// every request including 404 and 405 responses.
// It panics once the App has produced a Service.
func (a *App[S]) Use(mw ...handler.Middleware[S]) *App[S] {
	if a.router.Frozen() {
		panic(fmt.Errorf("%w: middleware must be added before Service is called", router.ErrFrozen))
	}
	for _, m := range mw {
		if m == nil {
			panic(ErrNilMiddleware)
		}
		if fn, ok := m.(handler.MiddlewareFunc[S]); ok && fn == nil {
			panic(ErrNilMiddleware)
		}
	}
	a.middleware = append(a.middleware, mw...)
	return a
}

// Routes lists every registered route.
func (a *App[S]) Routes() []router.RouteInfo {
	return a.router.Routes()
}

// Service freezes the App and returns the request handler. After this call
// no routes or middleware can be added. Calling it again returns another
// Service over the same frozen configuration.
func (a *App[S]) Service() *Service[S] {
	a.router.Freeze()
	return &Service[S]{
		state:        a.state,
		router:       a.router,
		middleware:   slices.Clip(slices.Clone(a.middleware)),
		errorHandler: a.errorHandler,
		logger:       a.logger,
	}
}
