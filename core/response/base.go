package response

import (
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// Render runs resp against w and r. If resp fails before anything was written,
// the error is rendered with ErrorHandler.
func Render(w http.ResponseWriter, r *http.Request, resp handler.Response) {
	if resp == nil {
		return
	}
	if err := resp(w, r); err != nil {
		ErrorHandler(w, r, err)
	}
}

// body writes content with the given content type and status.
// A zero status means 200 OK.
func body(content []byte, contentType string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if len(content) == 0 || r.Method == http.MethodHead {
			return nil
		}
		_, err := w.Write(content)
		return err
	}
}

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Response {
	return body([]byte(content), contentTypeText, http.StatusOK)
}

// StringWithStatus creates a text/plain response with a custom status code.
func StringWithStatus(content string, status int) handler.Response {
	return body([]byte(content), contentTypeText, status)
}

// HTML creates a text/html response with 200 OK status.
func HTML(content string) handler.Response {
	return body([]byte(content), contentTypeHTML, http.StatusOK)
}

// HTMLWithStatus creates a text/html response with a custom status code.
func HTMLWithStatus(content string, status int) handler.Response {
	return body([]byte(content), contentTypeHTML, status)
}

// Bytes creates a response with a custom content type and 200 OK status.
func Bytes(content []byte, contentType string) handler.Response {
	return body(content, contentType, http.StatusOK)
}

// BytesWithStatus creates a response with a custom content type and status code.
func BytesWithStatus(content []byte, contentType string, status int) handler.Response {
	return body(content, contentType, status)
}

// NoContent creates a 204 No Content response.
func NoContent() handler.Response {
	return Status(http.StatusNoContent)
}

// Status creates an empty response with the given status code.
func Status(code int) handler.Response {
	return body(nil, "", code)
}
