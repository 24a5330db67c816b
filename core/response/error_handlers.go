package response

import "net/http"

// ErrorHandler is the default error handler and renders errors as plain text.
// HTTPError values are used as is; other errors are mapped by StatusOf.
func ErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := toHTTPError(err)
	_ = StringWithStatus(httpErr.Error(), httpErr.Status)(w, r)
}

// JSONErrorHandler renders errors as HTTPError JSON documents.
func JSONErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := toHTTPError(err)
	_ = JSONWithStatus(httpErr, httpErr.Status)(w, r)
}
