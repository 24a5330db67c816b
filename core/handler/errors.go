package handler

import (
	"errors"
	"net/http"
)

var (
	ErrParamMissing = errors.New("path parameter is missing")
	ErrParamInvalid = errors.New("path parameter has invalid format")
	ErrNoEndpoint   = errors.New("continuation has no endpoint")
)

// ClientError marks a failure caused by the request itself (missing or
// malformed parameters, bad body). It renders as a 4xx response.
type ClientError struct {
	Status int
	Err    error
}

// Error implements the error interface.
func (e ClientError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.StatusCode())
	}
	return e.Err.Error()
}

// StatusCode returns the HTTP status, defaulting to 400 Bad Request.
func (e ClientError) StatusCode() int {
	if e.Status < 400 || e.Status > 499 {
		return http.StatusBadRequest
	}
	return e.Status
}

// Unwrap allows errors.Is/As to reach the cause.
func (e ClientError) Unwrap() error {
	return e.Err
}

// ServerError marks an internal failure of an endpoint or middleware.
// It renders as a 5xx response.
type ServerError struct {
	Status int
	Err    error
}

// Error implements the error interface.
func (e ServerError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.StatusCode())
	}
	return e.Err.Error()
}

// StatusCode returns the HTTP status, defaulting to 500 Internal Server Error.
func (e ServerError) StatusCode() int {
	if e.Status < 500 || e.Status > 599 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// Unwrap allows errors.Is/As to reach the cause.
func (e ServerError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err carries a ClientError anywhere in its chain.
func IsClientError(err error) bool {
	var ce ClientError
	return errors.As(err, &ce)
}
