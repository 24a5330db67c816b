// Package waypoint is a small HTTP application core: a segment-tree router,
// an ordered middleware list driven by an explicit continuation, and a shared
// application state handed to every request.
//
// An App is configured once and then turned into a Service, which implements
// http.Handler and is safe for concurrent use:
//
//	type State struct {
//		DB *sql.DB
//	}
//
//	app := waypoint.New(&State{DB: db}, waypoint.WithLogger[*State](log))
//	app.Use(middleware.RequestID[*State](), middleware.Logging[*State](log))
//
//	app.At("/users").Nest(func(r *router.Route[*State]) {
//		r.At("/").Get(listUsers).Post(createUser)
//		r.At("/:id").Get(getUser)
//	})
//
//	http.ListenAndServe(":8080", app.Service())
//
// # Middleware
//
// A middleware receives the request context and a handler.Next. Calling
// next.Run continues the chain; returning without calling it short-circuits.
// Middleware registered first runs first on the way in and last on the way
// out. Every request goes through the chain, including requests that match no
// route: their endpoint responds with router.ErrNotFound or
// router.ErrMethodNotAllowed.
//
// # Errors
//
// A Response that returns an error is passed to the error handler
// (response.ErrorHandler unless replaced with WithErrorHandler). Panics in
// middleware, endpoints or while rendering are recovered and reported as a
// PanicError with status 500. Errors with a 5xx status are logged.
package waypoint
