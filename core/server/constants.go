package server

import "time"

const (
	// DefaultReadTimeout bounds reading the whole request, body included.
	DefaultReadTimeout = 15 * time.Second

	// DefaultReadHeaderTimeout bounds reading the request headers.
	DefaultReadHeaderTimeout = 5 * time.Second

	// DefaultWriteTimeout bounds writing the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is how long keep-alive connections may sit idle.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is how long in-flight requests get to finish.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultMaxHeaderBytes is the default maximum size of request headers.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)
