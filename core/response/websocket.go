package response

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// WebSocketHandler serves a single upgraded connection.
// The context is the request context and is cancelled when the client goes away.
type WebSocketHandler func(ctx context.Context, conn *websocket.Conn) error

type wsConfig struct {
	upgrader     websocket.Upgrader
	header       http.Header
	onConnect    func(context.Context, *websocket.Conn) error
	onDisconnect func(context.Context, *websocket.Conn)
	onError      func(context.Context, error)
}

// WebSocketOption configures a WebSocket response.
type WebSocketOption func(*wsConfig)

// WithWSBufferSizes sets the read and write buffer sizes.
func WithWSBufferSizes(read, write int) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.ReadBufferSize = read
		c.upgrader.WriteBufferSize = write
	}
}

// WithWSHandshakeTimeout limits the duration of the upgrade handshake.
func WithWSHandshakeTimeout(timeout time.Duration) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.HandshakeTimeout = timeout
	}
}

// WithWSOriginCheck overrides the default same-origin check.
func WithWSOriginCheck(fn func(r *http.Request) bool) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.CheckOrigin = fn
	}
}

// WithWSSubprotocols sets the supported subprotocols in order of preference.
func WithWSSubprotocols(protocols ...string) WebSocketOption {
	return func(c *wsConfig) {
		c.upgrader.Subprotocols = protocols
	}
}

// WithWSUpgradeHeaders adds headers to the upgrade response.
func WithWSUpgradeHeaders(header http.Header) WebSocketOption {
	return func(c *wsConfig) {
		c.header = header
	}
}

// WithWSOnConnect runs fn right after the upgrade. An error closes the connection.
func WithWSOnConnect(fn func(context.Context, *websocket.Conn) error) WebSocketOption {
	return func(c *wsConfig) {
		c.onConnect = fn
	}
}

// WithWSOnDisconnect runs fn after the connection is closed.
func WithWSOnDisconnect(fn func(context.Context, *websocket.Conn)) WebSocketOption {
	return func(c *wsConfig) {
		c.onDisconnect = fn
	}
}

// WithWSErrorHandler receives errors that happen after the response is
// committed and therefore cannot reach the service's error handler.
func WithWSErrorHandler(fn func(context.Context, error)) WebSocketOption {
	return func(c *wsConfig) {
		c.onError = fn
	}
}

// WebSocket upgrades the connection and hands it to fn.
// Upgrade failures are answered by the upgrader itself.
func WebSocket(fn WebSocketHandler, opts ...WebSocketOption) handler.Response {
	if fn == nil {
		return Error(errNilHandler)
	}

	cfg := &wsConfig{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	report := func(ctx context.Context, err error) {
		if cfg.onError != nil && err != nil {
			cfg.onError(ctx, err)
		}
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		ctx := r.Context()

		conn, err := cfg.upgrader.Upgrade(w, r, cfg.header)
		if err != nil {
			report(ctx, err)
			return nil
		}
		defer func() {
			_ = conn.Close()
			if cfg.onDisconnect != nil {
				cfg.onDisconnect(ctx, conn)
			}
		}()

		if cfg.onConnect != nil {
			if err := cfg.onConnect(ctx, conn); err != nil {
				report(ctx, err)
				return nil
			}
		}

		report(ctx, fn(ctx, conn))
		return nil
	}
}

// EchoWebSocket writes every received message back to the client.
func EchoWebSocket(opts ...WebSocketOption) handler.Response {
	return WebSocket(func(ctx context.Context, conn *websocket.Conn) error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			typ, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return err
				}
				return nil
			}
			if err := conn.WriteMessage(typ, data); err != nil {
				return err
			}
		}
	}, opts...)
}
