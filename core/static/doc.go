// Package static serves files from disk or an fs.FS as waypoint endpoints.
//
// FS and Dir take the file path from a catch-all route parameter, so the
// router does the prefix matching:
//
//	//go:embed public
//	var public embed.FS
//
//	sub, _ := fs.Sub(public, "public")
//	app.At("/assets/*path").Get(static.FS[*State](sub, static.WithMaxAge(3600)))
//	app.At("/uploads/*file").Get(static.Dir[*State]("./uploads", static.WithParam("file")))
//	app.At("/favicon.ico").Get(static.File[*State]("./public/favicon.ico"))
//
// Directory listings are never served. A directory request resolves to its
// index file when one exists and to 404 otherwise.
package static
