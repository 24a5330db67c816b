package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsing is returned when environment variables cannot be parsed into a config.
var ErrParsing = errors.New("failed to parse environment")

var (
	loadEnvOnce sync.Once

	mu    sync.Mutex
	cache = map[reflect.Type]any{}
)

// Load fills cfg from the environment. The first successful load of a type
// is cached and later calls copy the cached value, so every component sees
// the same configuration.
//
// A .env file in the working directory is read once before the first load.
// Variables already set in the process environment take precedence.
func Load[T any](cfg *T) error {
	loadEnvOnce.Do(func() {
		// a missing .env file is the normal case in production
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParsing, typ, err)
	}
	cache[typ] = fresh
	*cfg = fresh
	return nil
}

// MustLoad is Load that panics on failure, for use during startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Get loads and returns a config of type T.
func Get[T any]() (T, error) {
	var cfg T
	err := Load(&cfg)
	return cfg, err
}
