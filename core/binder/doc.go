// Package binder decodes request data into Go values.
//
// Each Binder reads one part of the request: JSON for an application/json
// body, Form for form bodies, Query for the URL query and Path for captured
// route parameters. Bind applies several in order:
//
//	type UpdateItem struct {
//		ID    int64  `path:"id" json:"-"`
//		Name  string `json:"name"`
//		Force bool   `query:"force" json:"-"`
//	}
//
//	func update(ctx *handler.Context[*State]) handler.Response {
//		var req UpdateItem
//		err := binder.Bind(ctx.Request(), &req,
//			binder.JSON(), binder.Path(ctx), binder.Query())
//		if err != nil {
//			return response.Error(err)
//		}
//		...
//	}
//
// Decoding failures are handler.ClientError values carrying 400, 413 or 415,
// so returning them from an endpoint produces the matching client error. A
// target that is not a pointer to a struct is a programming error and is
// reported as ErrInvalidTarget, which maps to 500.
//
// Field and Fields peek at individual JSON values with gjson paths without
// consuming the body, which suits dispatching on a discriminator field
// before a full decode.
package binder
