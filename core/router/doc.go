// Package router maps request paths and HTTP methods to endpoints.
//
// Routes are stored in a segment tree: every '/'-separated piece of a pattern
// is one level of the tree. A segment is either a literal, a named wildcard
// (":id"), an anonymous wildcard (":"), a named catch-all ("*path") or an
// anonymous catch-all ("*"). A catch-all must be the last segment and
// matches zero or more remaining path segments.
//
// # Registration
//
//	r := router.New[*App]()
//	r.At("/").Get(home)
//	r.At("/users").Nest(func(users *router.Route[*App]) {
//		users.At("/").Get(listUsers).Post(createUser)
//		users.At("/:id").Get(getUser).Delete(deleteUser)
//	})
//	r.At("/static/*path").Get(serveStatic)
//
// Route builders panic on registration errors (invalid patterns, duplicate
// routes, conflicting wildcard names). Use Insert directly to get the error
// instead.
//
// # Matching
//
// At every level a literal child is tried first, then the wildcard, then the
// catch-all. A lower-precedence branch is only explored when the higher one
// does not produce an endpoint for the request method:
//
//	r.At("/users/new").Get(newUserForm)
//	r.At("/users/:id").Get(getUser)
//
//	GET /users/new -> newUserForm
//	GET /users/42  -> getUser (id = "42")
//
// Empty segments are ignored, so "/a//b/" matches "/a/b". Captured values are
// percent-decoded.
//
// When a path matches registered routes but none for the request method,
// Route returns ErrMethodNotAllowed together with the methods that are
// allowed. Otherwise it returns ErrNotFound.
//
// # Concurrency
//
// Register everything from one goroutine, then call Freeze. A frozen Router
// rejects further registration with ErrFrozen and may be shared by any
// number of goroutines.
package router
