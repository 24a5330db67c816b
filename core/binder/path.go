package binder

import (
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Path binds captured route parameters using `path` struct tags. Pass the
// request context the endpoint received:
//
//	type ItemRequest struct {
//		ID   int64  `path:"id"`
//		Rest string `path:"rest"`
//	}
//
//	app.At("/items/:id/*rest").Get(func(ctx *handler.Context[S]) handler.Response {
//		var req ItemRequest
//		if err := binder.Bind(ctx.Request(), &req, binder.Path(ctx)); err != nil {
//			return response.Error(err)
//		}
//		...
//	})
func Path(params handler.ParamLookup) Binder {
	return func(_ *http.Request, v any) error {
		return bindFields(v, "path", func(name string) ([]string, bool) {
			value, ok := params.LookupParam(name)
			if !ok || value == "" {
				return nil, false
			}
			return []string{value}, true
		}, ErrFailedToParsePath)
	}
}
