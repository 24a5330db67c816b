package waypoint

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
)

// Service is the frozen request handler produced by App.Service.
// It holds no per-request state and may be shared by any number of goroutines.
type Service[S any] struct {
	state        S
	router       *router.Router[S]
	middleware   []handler.Middleware[S]
	errorHandler handler.ErrorHandler
	logger       *slog.Logger
}

var _ http.Handler = (*Service[struct{}])(nil)

// State returns the shared application state.
func (s *Service[S]) State() S {
	return s.state
}

// Respond routes r and runs the middleware chain, returning the response
// without rendering it.
//
// Unmatched requests still go through the full middleware chain; their
// endpoint answers with router.ErrNotFound or router.ErrMethodNotAllowed.
// A panic inside the chain is recovered into a response carrying a PanicError.
func (s *Service[S]) Respond(r *http.Request) handler.Response {
	path := r.URL.EscapedPath()
	if path == "" {
		path = "/"
	}

	m, err := s.router.Route(r.Method, path)
	ep := m.Endpoint
	if err != nil {
		ep = unmatched[S](err, m.Allowed)
	}

	ctx := handler.NewContext(s.state, r, m.Params, m.Pattern)
	resp := s.run(ctx, ep)

	// render with the request as left by middleware, so values stored
	// with SetValue are visible to the response
	return func(w http.ResponseWriter, _ *http.Request) error {
		return resp(w, ctx.Request())
	}
}

func (s *Service[S]) run(ctx *handler.Context[S], ep handler.Endpoint[S]) (resp handler.Response) {
	defer func() {
		if p := recover(); p != nil {
			resp = response.Error(newPanicError(p))
		}
	}()

	resp = handler.NewNext(ep, s.middleware).Run(ctx)
	if resp == nil {
		resp = response.Error(ErrNilResponse)
	}
	return resp
}

// unmatched builds the endpoint that stands in for a missing route.
func unmatched[S any](err error, allowed []string) handler.Endpoint[S] {
	return handler.EndpointFunc[S](func(*handler.Context[S]) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			if errors.Is(err, router.ErrMethodNotAllowed) && len(allowed) > 0 {
				w.Header().Set("Allow", strings.Join(allowed, ", "))
			}
			return err
		}
	})
}

// ServeHTTP implements http.Handler.
func (s *Service[S]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	defer func() {
		if p := recover(); p != nil {
			s.fail(ww, r, newPanicError(p))
		}
	}()

	if err := s.Respond(r)(ww, r); err != nil {
		s.fail(ww, r, err)
	}
}

// fail logs server-side errors and renders err unless the response is
// already committed.
func (s *Service[S]) fail(w *responseWriter, r *http.Request, err error) {
	ctx := r.Context()

	if errors.Is(err, context.Canceled) {
		// client is gone; nobody reads the response
		s.logger.LogAttrs(ctx, slog.LevelDebug, "request canceled",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
		)
		return
	}

	status := response.StatusOf(err)

	if status >= http.StatusInternalServerError {
		attrs := []slog.Attr{
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(status),
			logger.Error(err),
		}
		var pe PanicError
		if errors.As(err, &pe) {
			attrs = append(attrs, logger.Panic(pe.Value(), pe.Stack()))
		}
		s.logger.LogAttrs(ctx, slog.LevelError, "request failed", attrs...)
	}

	if w.Written() {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "error after response was written",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(w.Status()),
			logger.Error(err),
		)
		return
	}

	s.errorHandler(w, r, err)
}
