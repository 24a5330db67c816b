package router

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Route is a builder scoped to a path prefix within a Router.
// It is only valid during the registration phase; every registration
// method panics on error since a broken routing table is a startup bug.
type Route[S any] struct {
	router *Router[S]
	path   string
}

// Path returns the accumulated path prefix of the route.
func (rt *Route[S]) Path() string {
	return rt.path
}

// At returns a builder for path relative to this route.
func (rt *Route[S]) At(path string) *Route[S] {
	return &Route[S]{router: rt.router, path: joinPath(rt.path, path)}
}

// Nest runs fn with this route as the builder, so every registration inside
// fn is placed under the route's prefix. The prefix node itself is created
// even if fn registers nothing on it.
func (rt *Route[S]) Nest(fn func(r *Route[S])) *Route[S] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilBuilder, rt.path))
	}
	if _, _, err := rt.router.ensure(rt.path); err != nil {
		panic(err)
	}
	fn(rt)
	return rt
}

// Handle registers ep for a single method at this route's path.
func (rt *Route[S]) Handle(method string, ep handler.Endpoint[S]) *Route[S] {
	if err := rt.router.Insert(method, rt.path, ep); err != nil {
		panic(err)
	}
	return rt
}

// Method registers ep for each of the given methods.
func (rt *Route[S]) Method(ep handler.Endpoint[S], methods ...string) *Route[S] {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided for '%s'", ErrInvalidMethod, rt.path))
	}
	for _, m := range methods {
		rt.Handle(m, ep)
	}
	return rt
}

// Any registers ep for every supported method.
func (rt *Route[S]) Any(ep handler.Endpoint[S]) *Route[S] {
	for mt := methodTyp(1); mt <= mALL; mt <<= 1 {
		if mt&mALL == 0 {
			continue
		}
		rt.Handle(reverseMethodMap[mt], ep)
	}
	return rt
}

func (rt *Route[S]) Get(fn handler.EndpointFunc[S]) *Route[S] {
	return rt.Handle(http.MethodGet, fn)
}

func (rt *Route[S]) Post(fn handler.EndpointFunc[S]) *Route[S] {
	return rt.Handle(http.MethodPost, fn)
}

func (rt *Route[S]) Put(fn handler.EndpointFunc[S]) *Route[S] {
	return rt.Handle(http.MethodPut, fn)
}

func (rt *Route[S]) Delete(fn handler.EndpointFunc[S]) *Route[S] {
	return rt.Handle(http.MethodDelete, fn)
}

func (rt *Route[S]) Patch(fn handler.EndpointFunc[S]) *Route[S] {
	return rt.Handle(http.MethodPatch, fn)
}

func (rt *Route[S]) Head(fn handler.EndpointFunc[S]) *Route[S] {
	return rt.Handle(http.MethodHead, fn)
}

func (rt *Route[S]) Options(fn handler.EndpointFunc[S]) *Route[S] {
	return rt.Handle(http.MethodOptions, fn)
}

func (rt *Route[S]) Connect(fn handler.EndpointFunc[S]) *Route[S] {
	return rt.Handle(http.MethodConnect, fn)
}

func (rt *Route[S]) Trace(fn handler.EndpointFunc[S]) *Route[S] {
	return rt.Handle(http.MethodTrace, fn)
}
