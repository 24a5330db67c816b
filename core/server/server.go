package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/waypoint/core/logger"
)

// Server wraps http.Server with graceful shutdown. Safe for concurrent use.
type Server struct {
	addr              string
	logger            *slog.Logger
	shutdown          time.Duration
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	maxHeaderBytes    int
	tlsConfig         *tls.Config

	mu       sync.Mutex
	running  bool
	listener net.Listener
	stop     context.CancelFunc
	done     chan struct{}
	ready    chan struct{}
}

// New creates a Server listening on addr. Use ":0" for a random port and
// read it back with Addr once Ready is closed.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:              addr,
		logger:            logger.Discard(),
		shutdown:          DefaultShutdownTimeout,
		readTimeout:       DefaultReadTimeout,
		readHeaderTimeout: DefaultReadHeaderTimeout,
		writeTimeout:      DefaultWriteTimeout,
		idleTimeout:       DefaultIdleTimeout,
		maxHeaderBytes:    DefaultMaxHeaderBytes,
		ready:             make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("server"))
	return s
}

// Start serves h and blocks until ctx is cancelled, Stop is called or the
// listener fails. On cancellation in-flight requests get the shutdown
// timeout to complete, and Start returns nil once they have.
func (s *Server) Start(ctx context.Context, h http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s: %w", ErrListen, s.addr, err)
	}

	ctx, stop := context.WithCancel(ctx)
	s.running = true
	s.listener = ln
	s.stop = stop
	s.done = make(chan struct{})
	done := s.done
	close(s.ready)
	s.mu.Unlock()

	defer func() {
		stop()
		s.mu.Lock()
		s.running = false
		s.listener = nil
		s.ready = make(chan struct{})
		s.mu.Unlock()
		close(done)
	}()

	srv := &http.Server{
		Handler:           h,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readHeaderTimeout,
		WriteTimeout:      s.writeTimeout,
		IdleTimeout:       s.idleTimeout,
		MaxHeaderBytes:    s.maxHeaderBytes,
		TLSConfig:         s.tlsConfig,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.InfoContext(ctx, "starting server", "addr", ln.Addr().String(), "tls", s.tlsConfig != nil)

		var err error
		if s.tlsConfig != nil {
			err = srv.ServeTLS(ln, "", "")
		} else {
			err = srv.Serve(ln)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrServe, err)
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.gracefulShutdown(srv)
	})
	return g.Wait()
}

func (s *Server) gracefulShutdown(srv *http.Server) error {
	s.logger.Info("shutting down server gracefully", "timeout", s.shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown error", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrShutdown, err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Stop triggers a graceful shutdown and waits for Start to return.
// It is a no-op when the server is not running.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	stop, done := s.stop, s.done
	s.mu.Unlock()

	stop()
	<-done
}

// Run adapts Start to errgroup.Group.Go:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, app.Service()))
func (s *Server) Run(ctx context.Context, h http.Handler) func() error {
	return func() error {
		return s.Start(ctx, h)
	}
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Addr returns the bound address while running and the configured one otherwise.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Running reports whether Start is serving.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Run creates a server with opts and serves h until ctx is cancelled.
func Run(ctx context.Context, addr string, h http.Handler, opts ...Option) error {
	return New(addr, opts...).Start(ctx, h)
}
