package middleware

import (
	"bufio"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// CompressConfig configures the gzip compression middleware.
type CompressConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.RequestContext) bool

	// Level is the gzip level (default: gzip.DefaultCompression)
	Level int

	// ExcludedContentTypes are prefixes of content types sent uncompressed
	// (default: already-compressed media and archives).
	ExcludedContentTypes []string
}

// Compress gzips response bodies for clients that accept it.
func Compress[S any]() handler.Middleware[S] {
	return CompressWithConfig[S](CompressConfig{})
}

// CompressWithConfig creates a compression middleware with custom configuration.
//
// Upgrade requests and HEAD requests pass through untouched. The decision is
// taken when the status is written, so responses that set their own
// Content-Encoding, have no body (204, 304, 1xx) or match an excluded content
// type are left as they are.
func CompressWithConfig[S any](cfg CompressConfig) handler.Middleware[S] {
	if cfg.Level == 0 {
		cfg.Level = gzip.DefaultCompression
	}
	if cfg.Level < gzip.HuffmanOnly || cfg.Level > gzip.BestCompression {
		panic("compress middleware: invalid gzip level")
	}
	if cfg.ExcludedContentTypes == nil {
		cfg.ExcludedContentTypes = []string{
			"image/",
			"video/",
			"audio/",
			"application/zip",
			"application/gzip",
			"application/x-gzip",
			"text/event-stream",
		}
	}

	pool := sync.Pool{
		New: func() any {
			gz, _ := gzip.NewWriterLevel(nil, cfg.Level)
			return gz
		},
	}

	return handler.MiddlewareFunc[S](func(ctx *handler.Context[S], next handler.Next[S]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		req := ctx.Request()
		resp := next.Run(ctx)
		if req.Method == http.MethodHead || req.Header.Get("Upgrade") != "" || !acceptsGzip(req) {
			return resp
		}

		return func(w http.ResponseWriter, r *http.Request) error {
			w.Header().Add("Vary", "Accept-Encoding")

			cw := &compressWriter{ResponseWriter: w, pool: &pool, excluded: cfg.ExcludedContentTypes}
			err := resp(cw, r)
			if cerr := cw.close(); err == nil {
				err = cerr
			}
			return err
		}
	})
}

func acceptsGzip(r *http.Request) bool {
	for part := range strings.SplitSeq(r.Header.Get("Accept-Encoding"), ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			continue
		}
		q := strings.ReplaceAll(params, " ", "")
		return q != "q=0" && q != "q=0.0" && q != "q=0.00" && q != "q=0.000"
	}
	return false
}

// compressWriter starts gzip lazily on the first header write.
type compressWriter struct {
	http.ResponseWriter
	pool     *sync.Pool
	excluded []string
	gz       *gzip.Writer
	decided  bool
}

func (cw *compressWriter) WriteHeader(status int) {
	if !cw.decided {
		cw.decided = true
		if cw.shouldCompress(status) {
			h := cw.Header()
			h.Set("Content-Encoding", "gzip")
			h.Del("Content-Length")
			cw.gz = cw.pool.Get().(*gzip.Writer)
			cw.gz.Reset(cw.ResponseWriter)
		}
	}
	cw.ResponseWriter.WriteHeader(status)
}

func (cw *compressWriter) shouldCompress(status int) bool {
	if status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified {
		return false
	}
	h := cw.Header()
	if h.Get("Content-Encoding") != "" {
		return false
	}
	ct := h.Get("Content-Type")
	for _, prefix := range cw.excluded {
		if strings.HasPrefix(ct, prefix) {
			return false
		}
	}
	return true
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if !cw.decided {
		if cw.Header().Get("Content-Type") == "" {
			cw.Header().Set("Content-Type", http.DetectContentType(b))
		}
		cw.WriteHeader(http.StatusOK)
	}
	if cw.gz != nil {
		return cw.gz.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

func (cw *compressWriter) Flush() {
	if !cw.decided {
		cw.WriteHeader(http.StatusOK)
	}
	if cw.gz != nil {
		_ = cw.gz.Flush()
	}
	_ = http.NewResponseController(cw.ResponseWriter).Flush()
}

func (cw *compressWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	cw.decided = true
	return http.NewResponseController(cw.ResponseWriter).Hijack()
}

func (cw *compressWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

func (cw *compressWriter) close() error {
	if cw.gz == nil {
		return nil
	}
	err := cw.gz.Close()
	cw.pool.Put(cw.gz)
	cw.gz = nil
	return err
}
