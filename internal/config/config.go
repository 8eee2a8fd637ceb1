// Package config loads runtime configuration from environment variables.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the tracker.
type Config struct {
	Addr         string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`

	DBPath string `envconfig:"DB_PATH" default:"./data/expenses.db"`

	// StaticPath, when set, serves the frontend from that directory.
	StaticPath string `envconfig:"STATIC_PATH"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		return nil, errors.New("database path must be provided")
	}
	switch cfg.LogFormat {
	case "pretty", "json":
	default:
		return nil, errors.New("log format must be \"pretty\" or \"json\"")
	}
	return &cfg, nil
}
