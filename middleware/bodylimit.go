package middleware

import (
	"fmt"
	"io"
	"mime"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
)

// Size units for BodyLimit.
const (
	KB int64 = 1024
	MB       = 1024 * KB
	GB       = 1024 * MB
)

// BodyLimitConfig configures the request body size limit middleware.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.RequestContext) bool

	// MaxSize is the default limit in bytes (default: 4MB)
	MaxSize int64

	// ContentTypeLimit overrides MaxSize per media type, e.g. "multipart/form-data".
	ContentTypeLimit map[string]int64

	// DisableContentLengthCheck skips the early Content-Length rejection and
	// relies on the reader limit alone.
	DisableContentLengthCheck bool
}

// BodyLimit limits request bodies to 4MB.
func BodyLimit[S any]() handler.Middleware[S] {
	return BodyLimitWithConfig[S](BodyLimitConfig{})
}

// BodyLimitWithSize limits request bodies to maxSize bytes.
func BodyLimitWithSize[S any](maxSize int64) handler.Middleware[S] {
	return BodyLimitWithConfig[S](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig creates a body limit middleware with custom configuration.
//
// A declared Content-Length above the limit is rejected with 413 before the
// endpoint runs. Otherwise the body is wrapped so that reading past the limit
// fails with a 413 HTTPError, which endpoints can return as is.
func BodyLimitWithConfig[S any](cfg BodyLimitConfig) handler.Middleware[S] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 * MB
	}

	return handler.MiddlewareFunc[S](func(ctx *handler.Context[S], next handler.Next[S]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		req := ctx.Request()

		maxSize := cfg.MaxSize
		if cfg.ContentTypeLimit != nil {
			if mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type")); err == nil {
				if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
					maxSize = limit
				}
			}
		}

		if !cfg.DisableContentLengthCheck && req.ContentLength > maxSize {
			return response.Error(bodyTooLarge(req.ContentLength, maxSize))
		}

		if req.Body != nil {
			req.Body = &limitedReader{ReadCloser: req.Body, limit: maxSize}
		}

		return next.Run(ctx)
	})
}

func bodyTooLarge(size, limit int64) response.HTTPError {
	details := map[string]any{"limit": limit}
	message := fmt.Sprintf("Request body too large. Maximum allowed: %s", formatBytes(limit))
	if size > 0 {
		details["size"] = size
		message = fmt.Sprintf("Request body too large. Size: %s, maximum allowed: %s",
			formatBytes(size), formatBytes(limit))
	}
	return response.ErrRequestEntityTooLarge.WithMessage(message).WithDetails(details)
}

// limitedReader fails once more than limit bytes have been read.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.read > lr.limit {
		return 0, bodyTooLarge(0, lr.limit)
	}

	// one extra byte distinguishes "exactly at the limit" from "over it"
	if remaining := lr.limit - lr.read + 1; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := lr.ReadCloser.Read(p)
	lr.read += int64(n)
	if lr.read > lr.limit {
		return n - int(lr.read-lr.limit), bodyTooLarge(0, lr.limit)
	}
	return n, err
}

func formatBytes(n int64) string {
	switch {
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
