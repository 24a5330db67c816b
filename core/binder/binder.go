package binder

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Binder decodes part of a request into v. Failures are handler.ClientError
// values, so an endpoint can return them unchanged and the client gets a 4xx.
type Binder func(r *http.Request, v any) error

// Bind runs binders in order and stops at the first error.
func Bind(r *http.Request, v any, binders ...Binder) error {
	for _, bind := range binders {
		if err := bind(r, v); err != nil {
			return err
		}
	}
	return nil
}

func clientError(status int, sentinel error, format string, args ...any) error {
	return handler.ClientError{
		Status: status,
		Err:    fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...),
	}
}

// mediaType returns the media type of the Content-Type header without parameters.
func mediaType(r *http.Request) (string, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", clientError(http.StatusUnsupportedMediaType, ErrMissingContentType, "no content-type header")
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", clientError(http.StatusUnsupportedMediaType, ErrUnsupportedMediaType, "%v", err)
	}
	return mt, nil
}
