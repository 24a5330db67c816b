package router

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Router maps path patterns and HTTP methods to endpoints using a
// segment-indexed tree. Nodes live in a flat arena and reference their
// children by index.
//
// A Router is built during a single-goroutine registration phase and then
// frozen. Route is safe for concurrent use once the router is frozen.
type Router[S any] struct {
	nodes  []node[S]
	frozen atomic.Bool
}

// Match is the successful result of routing a request.
type Match[S any] struct {
	Endpoint handler.Endpoint[S]
	Params   map[string]string
	Pattern  string
	// Allowed lists the methods registered on the structurally matched node.
	// It is populated for ErrMethodNotAllowed as well.
	Allowed []string
}

// RouteInfo describes a single registered route.
type RouteInfo struct {
	Method  string
	Pattern string
}

// New creates an empty router with only the root node.
func New[S any]() *Router[S] {
	return &Router[S]{
		nodes: []node[S]{{}},
	}
}

// Freeze ends the registration phase. Every later Insert fails with ErrFrozen.
func (r *Router[S]) Freeze() {
	r.frozen.Store(true)
}

// Frozen reports whether the router is frozen.
func (r *Router[S]) Frozen() bool {
	return r.frozen.Load()
}

// Insert registers ep for method at the node reached by walking pattern,
// creating intermediate nodes as needed.
func (r *Router[S]) Insert(method, pattern string, ep handler.Endpoint[S]) error {
	mt, ok := methodMap[strings.ToUpper(method)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidMethod, method)
	}
	if fn, ok := ep.(handler.EndpointFunc[S]); ep == nil || (ok && fn == nil) {
		return fmt.Errorf("%w: %s %s", ErrNilEndpoint, method, pattern)
	}

	idx, canonical, err := r.ensure(pattern)
	if err != nil {
		return err
	}

	n := &r.nodes[idx]
	if n.endpoints == nil {
		n.endpoints = make(map[methodTyp]*endpoint[S])
	}
	if prev, exists := n.endpoints[mt]; exists {
		return fmt.Errorf("%w: %s %s conflicts with %s", ErrAmbiguousRoute, reverseMethodMap[mt], canonical, prev.pattern)
	}
	n.endpoints[mt] = &endpoint[S]{handler: ep, pattern: canonical}
	return nil
}

// ensure walks pattern from the root, creating missing nodes, and returns
// the index of the final node with the canonical pattern.
func (r *Router[S]) ensure(pattern string) (int, string, error) {
	if r.frozen.Load() {
		return 0, "", fmt.Errorf("%w: cannot register '%s'", ErrFrozen, pattern)
	}

	segs, canonical, err := parsePattern(pattern)
	if err != nil {
		return 0, "", err
	}

	idx := 0
	for _, seg := range segs {
		switch seg.typ {
		case stStatic:
			child, ok := r.nodes[idx].static[seg.value]
			if !ok {
				child = r.newNode()
				if r.nodes[idx].static == nil {
					r.nodes[idx].static = make(map[string]int)
				}
				r.nodes[idx].static[seg.value] = child
			}
			idx = child

		case stParam:
			n := &r.nodes[idx]
			if n.param == noChild {
				child := r.newNode()
				n = &r.nodes[idx]
				n.param = child
				n.paramName = seg.value
			} else if n.paramName != seg.value {
				return 0, "", fmt.Errorf("%w: '%s' uses ':%s' where ':%s' is registered",
					ErrParamConflict, canonical, seg.value, n.paramName)
			}
			idx = n.param

		case stCatchAll:
			n := &r.nodes[idx]
			if n.catchAll == noChild {
				child := r.newNode()
				n = &r.nodes[idx]
				n.catchAll = child
				n.catchAllName = seg.value
			} else if n.catchAllName != seg.value {
				return 0, "", fmt.Errorf("%w: '%s' uses '*%s' where '*%s' is registered",
					ErrParamConflict, canonical, seg.value, n.catchAllName)
			}
			idx = n.catchAll
		}
	}

	return idx, canonical, nil
}

// newNode appends an empty node to the arena and returns its index.
// Pointers into r.nodes are invalid after this call.
func (r *Router[S]) newNode() int {
	r.nodes = append(r.nodes, node[S]{})
	return len(r.nodes) - 1
}

// search carries the state of a single lookup.
type search struct {
	method     methodTyp
	found      int
	params     []param
	structural int
}

// Route finds the endpoint registered for method and path.
// path is the escaped request path; captured values are percent-decoded.
//
// At every node a concrete segment is tried before a wildcard and a wildcard
// before a catch-all. A lower-precedence branch is only explored when the
// higher one has no match for the method.
func (r *Router[S]) Route(method, path string) (Match[S], error) {
	st := &search{
		method:     methodMap[method],
		found:      -1,
		structural: -1,
	}

	r.find(0, splitPath(path), nil, st)

	if st.found >= 0 {
		ep := r.nodes[st.found].endpoints[st.method]
		m := Match[S]{
			Endpoint: ep.handler,
			Pattern:  ep.pattern,
			Allowed:  r.allowed(st.found),
		}
		if len(st.params) > 0 {
			m.Params = make(map[string]string, len(st.params))
			for _, p := range st.params {
				m.Params[p.key] = p.value
			}
		}
		return m, nil
	}

	if st.structural >= 0 {
		return Match[S]{Allowed: r.allowed(st.structural)}, ErrMethodNotAllowed
	}

	return Match[S]{}, ErrNotFound
}

// find is a depth-first walk in precedence order. It returns true once a node
// carrying the requested method is found.
func (r *Router[S]) find(idx int, segs []string, params []param, st *search) bool {
	n := &r.nodes[idx]

	if len(segs) == 0 {
		if r.accept(idx, params, st) {
			return true
		}
		// a catch-all also matches zero remaining segments
		if n.catchAll != noChild {
			return r.findCatchAll(n, segs, params, st)
		}
		return false
	}

	seg := segs[0]

	if child, ok := n.static[seg]; ok {
		if r.find(child, segs[1:], params, st) {
			return true
		}
	}

	if n.param != noChild {
		next := params
		if n.paramName != "" {
			next = append(params[:len(params):len(params)], param{key: n.paramName, value: seg})
		}
		if r.find(n.param, segs[1:], next, st) {
			return true
		}
	}

	if n.catchAll != noChild {
		return r.findCatchAll(n, segs, params, st)
	}

	return false
}

func (r *Router[S]) findCatchAll(n *node[S], segs []string, params []param, st *search) bool {
	next := params
	if n.catchAllName != "" {
		next = append(params[:len(params):len(params)], param{key: n.catchAllName, value: strings.Join(segs, "/")})
	}
	return r.accept(n.catchAll, next, st)
}

// accept records idx as a structural match and reports whether it carries
// the requested method.
func (r *Router[S]) accept(idx int, params []param, st *search) bool {
	n := &r.nodes[idx]
	if len(n.endpoints) == 0 {
		return false
	}
	if st.structural < 0 {
		st.structural = idx
	}
	if _, ok := n.endpoints[st.method]; ok && st.method != 0 {
		st.found = idx
		st.params = params
		return true
	}
	return false
}

func (r *Router[S]) allowed(idx int) []string {
	eps := r.nodes[idx].endpoints
	out := make([]string, 0, len(eps))
	for mt := range eps {
		out = append(out, reverseMethodMap[mt])
	}
	sort.Strings(out)
	return out
}

// Routes returns all registered routes sorted by pattern, then method.
func (r *Router[S]) Routes() []RouteInfo {
	rts := []RouteInfo{}
	for i := range r.nodes {
		for mt, ep := range r.nodes[i].endpoints {
			rts = append(rts, RouteInfo{Method: reverseMethodMap[mt], Pattern: ep.pattern})
		}
	}
	sort.Slice(rts, func(i, j int) bool {
		if rts[i].Pattern != rts[j].Pattern {
			return rts[i].Pattern < rts[j].Pattern
		}
		return rts[i].Method < rts[j].Method
	})
	return rts
}

// At returns a route builder for path, relative to the root.
func (r *Router[S]) At(path string) *Route[S] {
	return &Route[S]{router: r, path: joinPath("", path)}
}
