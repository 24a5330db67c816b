package static

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
)

// DefaultParam is the catch-all parameter FS and Dir read the file path from.
const DefaultParam = "path"

var (
	ErrInvalidPath = errors.New("invalid static file path")
	ErrNotAFile    = errors.New("not a regular file")
)

type options struct {
	param  string
	index  string
	maxAge int
}

// Option configures FS and Dir.
type Option func(*options)

// WithParam names the route parameter holding the file path (default "path").
func WithParam(name string) Option {
	return func(o *options) {
		o.param = name
	}
}

// WithIndex sets the file served for directory requests (default "index.html").
// Directories without it are reported as not found; listings are never produced.
func WithIndex(name string) Option {
	return func(o *options) {
		o.index = name
	}
}

// WithMaxAge adds a public Cache-Control max-age in seconds.
func WithMaxAge(seconds int) Option {
	return func(o *options) {
		o.maxAge = seconds
	}
}

// FS serves files from fsys, typically an embed.FS, using the catch-all
// parameter of the route it is mounted on:
//
//	app.At("/assets/*path").Get(static.FS[*State](assets))
//
// Requests escaping the root and missing files answer 404. Range and
// conditional requests are handled by http.ServeFileFS.
func FS[S any](fsys fs.FS, opts ...Option) handler.EndpointFunc[S] {
	o := options{param: DefaultParam, index: "index.html"}
	for _, opt := range opts {
		opt(&o)
	}

	return func(ctx *handler.Context[S]) handler.Response {
		name, err := resolve(fsys, ctx.Param(o.param), o.index)
		if err != nil {
			return response.Error(response.ErrNotFound.WithError(err))
		}

		return func(w http.ResponseWriter, r *http.Request) error {
			if o.maxAge > 0 {
				w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", o.maxAge))
			}
			http.ServeFileFS(w, r, fsys, name)
			return nil
		}
	}
}

// Dir serves files from a directory on disk. It panics at startup when root
// is not a readable directory.
func Dir[S any](root string, opts ...Option) handler.EndpointFunc[S] {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		panic(fmt.Sprintf("static.Dir: %v", err))
	}
	if !info.IsDir() {
		panic("static.Dir: not a directory: " + root)
	}
	return FS[S](os.DirFS(root), opts...)
}

// File serves a single file regardless of the request path. It panics at
// startup when the file is missing or is a directory.
func File[S any](name string) handler.EndpointFunc[S] {
	name = filepath.Clean(name)
	info, err := os.Stat(name)
	if err != nil {
		panic(fmt.Sprintf("static.File: %v", err))
	}
	if info.IsDir() {
		panic("static.File: path is a directory: " + name)
	}

	return func(*handler.Context[S]) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			http.ServeFile(w, r, name)
			return nil
		}
	}
}

// resolve maps a request path to a regular file in fsys.
func resolve(fsys fs.FS, raw, index string) (string, error) {
	name := strings.Trim(path.Clean("/"+raw), "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, raw)
	}

	info, err := fs.Stat(fsys, name)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		name = path.Join(name, index)
		if info, err = fs.Stat(fsys, name); err != nil {
			return "", err
		}
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotAFile, name)
	}
	return name, nil
}
