package response

import (
	"maps"
	"net/http"
	"strings"
)

// HTTPError is a structured error response. It implements error and carries
// its own status code, so it can be returned from any Response.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewHTTPError creates a 500 error with a custom message.
func NewHTTPError(message string) HTTPError {
	return ErrInternalServerError.WithMessage(message)
}

func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error. A zero Status is 500.
func (e HTTPError) StatusCode() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with the given details merged in.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	merged := make(map[string]any, len(e.Details)+len(details))
	maps.Copy(merged, e.Details)
	maps.Copy(merged, details)
	e.Details = merged
	return e
}

// WithError returns a copy of the error with err recorded as the "cause" detail.
func (e HTTPError) WithError(err error) HTTPError {
	if err == nil {
		return e
	}
	return e.WithDetails(map[string]any{"cause": err.Error()})
}

// HTTPErrorFor returns the catalogue error for status, or a generic error
// built from http.StatusText when the status is not in the catalogue.
func HTTPErrorFor(status int) HTTPError {
	if e, ok := httpErrorsByStatus[status]; ok {
		return e
	}
	if text := http.StatusText(status); text != "" {
		code := strings.ToLower(strings.ReplaceAll(text, " ", "_"))
		return HTTPError{Status: status, Code: code, Message: text}
	}
	return ErrInternalServerError
}

func httpError(status int, code string) HTTPError {
	e := HTTPError{
		Status:  status,
		Code:    code,
		Message: http.StatusText(status),
	}
	httpErrorsByStatus[status] = e
	return e
}

var httpErrorsByStatus = map[int]HTTPError{}

// Client errors.
var (
	ErrBadRequest            = httpError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized          = httpError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden             = httpError(http.StatusForbidden, "forbidden")
	ErrNotFound              = httpError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed      = httpError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrNotAcceptable         = httpError(http.StatusNotAcceptable, "not_acceptable")
	ErrRequestTimeout        = httpError(http.StatusRequestTimeout, "request_timeout")
	ErrConflict              = httpError(http.StatusConflict, "conflict")
	ErrGone                  = httpError(http.StatusGone, "gone")
	ErrPreconditionFailed    = httpError(http.StatusPreconditionFailed, "precondition_failed")
	ErrRequestEntityTooLarge = httpError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrUnsupportedMediaType  = httpError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrUnprocessableEntity   = httpError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrTooManyRequests       = httpError(http.StatusTooManyRequests, "too_many_requests")
)

// Server errors.
var (
	ErrInternalServerError = httpError(http.StatusInternalServerError, "internal_server_error")
	ErrNotImplemented      = httpError(http.StatusNotImplemented, "not_implemented")
	ErrBadGateway          = httpError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable  = httpError(http.StatusServiceUnavailable, "service_unavailable")
	ErrGatewayTimeout      = httpError(http.StatusGatewayTimeout, "gateway_timeout")
)
