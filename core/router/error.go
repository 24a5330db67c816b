package router

import "errors"

var (
	// Matching errors
	ErrNotFound         = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")

	// Registration errors
	ErrInvalidPattern   = errors.New("routing pattern must begin with '/'")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilEndpoint      = errors.New("endpoint cannot be nil")
	ErrNilBuilder       = errors.New("nest function cannot be nil")
	ErrWildcardPosition = errors.New("catch-all segment must be the last segment in a route")
	ErrDuplicateParam   = errors.New("routing pattern contains duplicate param key")
	ErrParamConflict    = errors.New("conflicting param names at the same route position")
	ErrAmbiguousRoute   = errors.New("route already registered for method")
	ErrFrozen           = errors.New("router is frozen")
)
