package response

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Templ renders a templ component as text/html with 200 OK status.
// The component is rendered with the request context, so it can read
// request-scoped values such as the request ID.
func Templ(component templ.Component) handler.Response {
	return TemplWithStatus(component, http.StatusOK)
}

// TemplWithStatus renders a templ component with a custom status code.
func TemplWithStatus(component templ.Component, status int) handler.Response {
	if component == nil {
		return Error(fmt.Errorf("templ: %w", errNilComponent))
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		w.WriteHeader(status)
		if err := component.Render(r.Context(), w); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		return nil
	}
}
