package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}

// Tests in this file mutate the process environment and the shared cache,
// so they do not run in parallel.

type serverSettings struct {
	Addr    string        `env:"CONFIG_TEST_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"5s"`
	Tags    []string      `env:"CONFIG_TEST_TAGS" envSeparator:","`
}

type requiredSettings struct {
	Secret string `env:"CONFIG_TEST_SECRET,required"`
}

type badSettings struct {
	Port int `env:"CONFIG_TEST_PORT"`
}

func TestLoad(t *testing.T) {
	reset()
	t.Setenv("CONFIG_TEST_ADDR", ":9090")
	t.Setenv("CONFIG_TEST_TAGS", "a,b")

	var cfg serverSettings
	require.NoError(t, Load(&cfg))
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"a", "b"}, cfg.Tags)
}

func TestLoadCachesPerType(t *testing.T) {
	reset()
	t.Setenv("CONFIG_TEST_ADDR", ":1111")

	var first serverSettings
	require.NoError(t, Load(&first))

	t.Setenv("CONFIG_TEST_ADDR", ":2222")

	var second serverSettings
	require.NoError(t, Load(&second))
	assert.Equal(t, ":1111", second.Addr, "second load comes from the cache")

	got, err := Get[serverSettings]()
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestLoadErrors(t *testing.T) {
	reset()

	var req requiredSettings
	err := Load(&req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParsing)
	assert.Contains(t, err.Error(), "CONFIG_TEST_SECRET")

	t.Setenv("CONFIG_TEST_SECRET", "s3cret")
	require.NoError(t, Load(&req), "failed loads are not cached")
	assert.Equal(t, "s3cret", req.Secret)

	t.Setenv("CONFIG_TEST_PORT", "eighty")
	var bad badSettings
	assert.ErrorIs(t, Load(&bad), ErrParsing)
}

func TestMustLoad(t *testing.T) {
	reset()

	assert.Panics(t, func() {
		var req requiredSettings
		MustLoad(&req)
	})

	t.Setenv("CONFIG_TEST_SECRET", "ok")
	assert.NotPanics(t, func() {
		var req requiredSettings
		MustLoad(&req)
	})
}
