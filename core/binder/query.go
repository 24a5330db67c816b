package binder

import "net/http"

// Query binds URL query parameters using `query` struct tags.
// Slices accept repeated keys and comma-separated values.
//
//	type SearchRequest struct {
//		Query  string   `query:"q"`
//		Page   int      `query:"page"`
//		Tags   []string `query:"tags"`
//		Active *bool    `query:"active"`
//	}
func Query() Binder {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}

// Form binds application/x-www-form-urlencoded and multipart/form-data
// values using `form` struct tags. File parts are ignored.
func Form() Binder {
	return func(r *http.Request, v any) error {
		mt, err := mediaType(r)
		if err != nil {
			return err
		}

		switch mt {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return clientError(http.StatusBadRequest, ErrFailedToParseForm, "%v", err)
			}
			return bindValues(v, "form", r.PostForm, ErrFailedToParseForm)
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return clientError(http.StatusBadRequest, ErrFailedToParseForm, "%v", err)
			}
			return bindValues(v, "form", r.MultipartForm.Value, ErrFailedToParseForm)
		}
		return clientError(http.StatusUnsupportedMediaType, ErrUnsupportedMediaType,
			"got %s, expected a form", mt)
	}
}

// DefaultMaxMemory is the multipart memory budget before parts spill to disk.
const DefaultMaxMemory = 10 << 20
