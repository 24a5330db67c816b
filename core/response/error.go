package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/router"
)

var (
	errNilComponent = errors.New("component cannot be nil")
	errNilHandler   = errors.New("websocket handler cannot be nil")
)

// Error returns a response that fails with err, so it ends up in the
// service's error handler.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}

// ErrorStatus returns a response that fails with the catalogue error for status.
func ErrorStatus(status int) handler.Response {
	return Error(HTTPErrorFor(status))
}

// statusCoder is implemented by errors that carry their own HTTP status.
type statusCoder interface {
	StatusCode() int
}

// StatusOf returns the HTTP status code err maps to.
// Unknown errors, and errors reporting a status outside 400-599, map to 500.
func StatusOf(err error) int {
	var sc statusCoder
	switch {
	case errors.As(err, &sc):
		// a status outside the error range would render as a success
		if code := sc.StatusCode(); code >= http.StatusBadRequest && code <= 599 {
			return code
		}
		return http.StatusInternalServerError
	case errors.Is(err, router.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, router.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// toHTTPError converts any error into a catalogue HTTPError.
// The cause is attached only for client errors; server-side failures
// must not leak internals to the client.
func toHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		if StatusOf(httpErr) == httpErr.Status {
			return httpErr
		}
		return HTTPErrorFor(http.StatusInternalServerError)
	}

	status := StatusOf(err)
	base := HTTPErrorFor(status)
	if status < http.StatusInternalServerError && !isSentinel(err) {
		return base.WithError(err)
	}
	return base
}

func isSentinel(err error) bool {
	return errors.Is(err, router.ErrNotFound) || errors.Is(err, router.ErrMethodNotAllowed)
}
