package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// JSON creates an application/json response with 200 OK status.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with a custom status code.
// A zero status resolves to 204 for a nil value and 200 otherwise.
// The value is encoded straight into the writer.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status == 0 {
			status = http.StatusOK
			if v == nil {
				status = http.StatusNoContent
			}
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(status)

		// no body allowed
		if status == http.StatusNoContent || status == http.StatusNotModified || r.Method == http.MethodHead {
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}
