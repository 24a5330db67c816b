package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/logger"
)

type requestIDKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithAttr(slog.String("service", "api")),
	)

	log.Info("hello", logger.Method("GET"))
	rec := decode(t, &buf)
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "api", rec["service"])
	assert.Equal(t, "GET", rec["method"])
}

func TestNewLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", requestIDKey{}),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			return slog.String("static", "yes"), true
		}),
	)

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-1")
	log.With("k", "v").InfoContext(ctx, "with id")
	rec := decode(t, &buf)
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "yes", rec["static"])
	assert.Equal(t, "v", rec["k"])

	buf.Reset()
	log.InfoContext(context.Background(), "without id")
	rec = decode(t, &buf)
	assert.NotContains(t, rec, "request_id")
}

func TestPresets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger.New(logger.WithProduction("svc"), logger.WithOutput(&buf)).Debug("dropped")
	assert.Empty(t, buf.String())

	logger.New(logger.WithProduction("svc"), logger.WithOutput(&buf)).Info("kept")
	rec := decode(t, &buf)
	assert.Equal(t, "production", rec["env"])

	buf.Reset()
	logger.New(logger.WithDevelopment("svc"), logger.WithOutput(&buf)).Debug("debug")
	assert.Contains(t, buf.String(), "env=development")
}

func TestWithConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithConfig(logger.Config{Level: "debug", Format: "JSON", Service: "demo"}),
		logger.WithOutput(&buf),
	)
	log.Debug("cfg")
	rec := decode(t, &buf)
	assert.Equal(t, "demo", rec["service"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	errs := logger.Errors(errors.New("a"), nil, errors.New("c"))
	require.Equal(t, slog.KindGroup, errs.Value.Kind())
	g := errs.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "req", logger.RequestID("req").Value.String())
	assert.True(t, logger.Route("").Equal(slog.Attr{}))
	assert.Equal(t, "/users/:id", logger.Route("/users/:id").Value.String())
	assert.Equal(t, int64(404), logger.StatusCode(404).Value.Int64())
	assert.Equal(t, time.Second, logger.Latency(time.Second).Value.Duration())
	assert.True(t, logger.Key("k", nil).Equal(slog.Attr{}))

	p := logger.Panic("boom", []byte("stack"))
	assert.Equal(t, "panic", p.Key)
	require.Len(t, p.Value.Group(), 2)
	assert.Equal(t, "boom", p.Value.Group()[0].Value.Any())
}

func TestAttrsInOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))
	log.Info("req", logger.Error(nil), logger.ClientIP(""), logger.Path("/x"))

	out := buf.String()
	assert.NotContains(t, out, "error")
	assert.NotContains(t, out, "client_ip")
	assert.True(t, strings.Contains(out, "path=/x"))
}
