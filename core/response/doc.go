// Package response provides constructors for handler.Response values and the
// error handlers used by the service to render failed responses.
//
// A Response is a render function. Constructors here only build it; nothing is
// written until the service renders the response after the middleware chain
// has finished, which lets middleware wrap or replace a response on its way out.
//
//	func getUser(ctx *handler.Context[*App]) handler.Response {
//		id, err := handler.ParamAs[int64](ctx, "id")
//		if err != nil {
//			return response.Error(err)
//		}
//		user, err := ctx.State().Users.Get(ctx, id)
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSON(user)
//	}
//
// # Errors
//
// Returning an error from a Response hands it to the service's error handler.
// ErrorHandler renders plain text and JSONErrorHandler renders an HTTPError
// document. The status code is resolved by StatusOf:
//
//   - errors implementing StatusCode() int (HTTPError, handler.ClientError,
//     handler.ServerError) use their own status
//   - router.ErrNotFound maps to 404 and router.ErrMethodNotAllowed to 405
//   - everything else maps to 500
//
// Causes are included in the rendered error only for 4xx statuses.
//
// # Decorators
//
// WithHeaders, WithHeader, WithCookie and WithCache wrap an existing response:
//
//	return response.WithCache(response.JSON(list), 5*time.Minute)
//
// # Templ and WebSocket
//
// Templ renders a github.com/a-h/templ component with the request context.
// WebSocket upgrades the connection with github.com/gorilla/websocket and
// passes it to a handler function; errors after the upgrade go to the
// WithWSErrorHandler callback because the HTTP response is already committed.
package response
