package waypoint

import (
	"log/slog"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Option configures an App during creation.
type Option[S any] func(*App[S])

// WithErrorHandler replaces the default plain text error handler.
func WithErrorHandler[S any](h handler.ErrorHandler) Option[S] {
	return func(a *App[S]) {
		if h != nil {
			a.errorHandler = h
		}
	}
}

// WithLogger sets the logger used for server-side failures and recovered panics.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(a *App[S]) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMiddleware appends middleware at construction time. It is equivalent to
// calling Use right after New.
func WithMiddleware[S any](mw ...handler.Middleware[S]) Option[S] {
	return func(a *App[S]) {
		a.Use(mw...)
	}
}
