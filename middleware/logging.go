package middleware

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
)

// LoggingConfig configures the request/response logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.RequestContext) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// LogRequest logs a record when the request arrives (default: false)
	LogRequest bool

	// LogRequestBody logs up to MaxBodyLogSize bytes of the request body
	LogRequestBody bool

	// LogHeaders logs request headers with sensitive ones redacted
	LogHeaders bool

	// MaxBodyLogSize is the maximum size of body to log in bytes (default: 4KB)
	MaxBodyLogSize int

	// SensitiveHeaders are redacted when LogHeaders is set
	SensitiveHeaders []string

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging (default: "http")
	Component string
}

// Logging logs one record per request with the default configuration.
func Logging[S any](log *slog.Logger) handler.Middleware[S] {
	return LoggingWithConfig[S](LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a logging middleware with custom configuration.
//
// The completion record is written after the response renders. Its level is
// error for 5xx, warn for 4xx and slow requests, and LogLevel otherwise. When
// the response fails before writing anything, the status is the one the
// error maps to.
func LoggingWithConfig[S any](cfg LoggingConfig) handler.Middleware[S] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxBodyLogSize <= 0 {
		cfg.MaxBodyLogSize = 4 * 1024
	}
	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return handler.MiddlewareFunc[S](func(ctx *handler.Context[S], next handler.Next[S]) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next.Run(ctx)
		}

		start := time.Now()
		req := ctx.Request()

		attrs := []slog.Attr{
			logger.Component(cfg.Component),
			logger.Method(req.Method),
			logger.Path(req.URL.Path),
			logger.Route(ctx.Pattern()),
		}
		if id, ok := GetRequestID(ctx); ok {
			attrs = append(attrs, logger.RequestID(id))
		}
		if ip, ok := GetClientIP(ctx); ok {
			attrs = append(attrs, logger.ClientIP(ip))
		}

		var bodyErr error
		if cfg.LogRequestBody && req.Body != nil && req.Body != http.NoBody {
			// only the logged prefix is buffered; the rest stays on the wire
			body, err := io.ReadAll(io.LimitReader(req.Body, int64(cfg.MaxBodyLogSize)+1))
			req.Body = bodyReader{Reader: io.MultiReader(bytes.NewReader(body), req.Body), Closer: req.Body}
			if err != nil {
				bodyErr = readBodyError(err)
				attrs = append(attrs, logger.Error(err))
			}
			if len(body) > cfg.MaxBodyLogSize {
				body = body[:cfg.MaxBodyLogSize]
				attrs = append(attrs, slog.Bool("request_body_truncated", true))
			}
			if len(body) > 0 {
				attrs = append(attrs, slog.String("request_body", string(body)))
			}
		}

		if cfg.LogHeaders {
			if headers := redactHeaders(req.Header, cfg.SensitiveHeaders); len(headers) > 0 {
				attrs = append(attrs, slog.Any("request_headers", headers))
			}
		}

		if cfg.LogRequest {
			cfg.Logger.LogAttrs(req.Context(), cfg.LogLevel, "request started", attrs...)
		}

		var resp handler.Response
		if bodyErr != nil {
			resp = response.Error(bodyErr)
		} else {
			resp = next.Run(ctx)
		}

		return func(w http.ResponseWriter, r *http.Request) error {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			err := resp(rec, r)

			status := rec.status
			if err != nil && !rec.written {
				status = response.StatusOf(err)
			}
			duration := time.Since(start)

			attrs := append(slices.Clip(attrs),
				logger.StatusCode(status),
				logger.BytesOut(rec.size),
				logger.UserAgent(req.UserAgent()),
				logger.Duration(duration),
			)

			level := cfg.LogLevel
			switch {
			case errors.Is(err, context.Canceled):
				level = slog.LevelDebug
				attrs = append(attrs, logger.Error(err))
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
				attrs = append(attrs, logger.Error(err))
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
				attrs = append(attrs, logger.Error(err))
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(r.Context(), level, "request completed", attrs...)
			return err
		}
	})
}

// readBodyError maps a failed body read to a client error. Bodies cut off by
// http.MaxBytesReader report 413.
func readBodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return handler.ClientError{Status: http.StatusRequestEntityTooLarge, Err: err}
	}
	return handler.ClientError{Err: err}
}

// bodyReader replays the buffered prefix and keeps the original Close.
type bodyReader struct {
	io.Reader
	io.Closer
}

func redactHeaders(h http.Header, sensitive []string) map[string]any {
	out := make(map[string]any, len(h))
	for key, values := range h {
		switch {
		case slices.Contains(sensitive, key):
			out[key] = "[REDACTED]"
		case len(values) == 1:
			out[key] = values[0]
		default:
			out[key] = values
		}
	}
	return out
}

// statusRecorder captures the status and size written by a response.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool
}

func (rw *statusRecorder) WriteHeader(status int) {
	if !rw.written {
		rw.status = status
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

func (rw *statusRecorder) Flush() {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	_ = http.NewResponseController(rw.ResponseWriter).Flush()
}

func (rw *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, brw, err := http.NewResponseController(rw.ResponseWriter).Hijack()
	if err == nil && !rw.written {
		rw.status = http.StatusSwitchingProtocols
		rw.written = true
	}
	return conn, brw, err
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
