package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

// JSON decodes an application/json body into v, rejecting unknown fields
// and trailing data.
func JSON() Binder {
	return JSONWithLimit(DefaultMaxJSONSize)
}

// JSONWithLimit is JSON with a custom body size limit in bytes.
func JSONWithLimit(maxSize int64) Binder {
	return func(r *http.Request, v any) error {
		mt, err := mediaType(r)
		if err != nil {
			return err
		}
		if mt != "application/json" {
			return clientError(http.StatusUnsupportedMediaType, ErrUnsupportedMediaType,
				"got %s, expected application/json", mt)
		}

		body, err := readBody(r, maxSize)
		if err != nil {
			return err
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return clientError(http.StatusBadRequest, ErrFailedToParseJSON, "empty body")
			}
			var invalid *json.InvalidUnmarshalError
			if errors.As(err, &invalid) {
				return ErrInvalidTarget
			}
			return clientError(http.StatusBadRequest, ErrFailedToParseJSON, "%v", err)
		}
		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return clientError(http.StatusBadRequest, ErrFailedToParseJSON, "unexpected data after JSON value")
		}
		return nil
	}
}

// readBody reads at most maxSize bytes and puts the body back so later
// binders can read it again.
func readBody(r *http.Request, maxSize int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSize+1))
	_ = r.Body.Close()
	if err != nil {
		// a limit already enforced upstream carries its own status
		if _, ok := err.(interface{ StatusCode() int }); ok {
			return nil, err
		}
		return nil, clientError(http.StatusBadRequest, ErrFailedToParseJSON, "read body: %v", err)
	}
	if int64(len(body)) > maxSize {
		return nil, clientError(http.StatusRequestEntityTooLarge, ErrBodyTooLarge, "max %d bytes", maxSize)
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
