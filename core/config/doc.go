// Package config loads typed configuration from environment variables.
//
// Config structs declare their variables with caarlos0/env tags. Each type
// is parsed once and cached, so packages that need the same settings can
// call Load independently without re-reading the environment:
//
//	type AppConfig struct {
//		Name string `env:"APP_NAME" envDefault:"waypoint"`
//		Env  string `env:"APP_ENV" envDefault:"development"`
//	}
//
//	var app AppConfig
//	config.MustLoad(&app)
//
//	var srv server.Config
//	if err := config.Load(&srv); err != nil {
//		return err
//	}
//
// A .env file in the working directory is applied on first use through
// joho/godotenv. It never overrides variables that are already set.
//
// Parse failures wrap ErrParsing together with the env library error, which
// names the offending variable.
package config
