// Package config loads application configuration from environment variables.
//
// Configuration is an explicit struct passed into constructors; no component
// reads ambient global state.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Explorer  ExplorerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8600"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// ExplorerConfig holds directory explorer configuration.
type ExplorerConfig struct {
	// Root confines every browse, search and paste target.
	Root string `envconfig:"DIRED_ROOT" default:"/"`
	// ShowHidden is the default for scans that do not specify it.
	ShowHidden bool `envconfig:"DIRED_SHOW_HIDDEN" default:"false"`
	// ScanWorkers caps concurrent stat calls during a scan (0 = unbounded).
	ScanWorkers int `envconfig:"DIRED_SCAN_WORKERS" default:"32"`
	// WatchEnabled turns on the fsnotify watcher for the browsed directory.
	WatchEnabled bool `envconfig:"DIRED_WATCH" default:"true"`
	// SearchLimit caps the number of results a search returns.
	SearchLimit int `envconfig:"DIRED_SEARCH_LIMIT" default:"200"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8600",
			Host: "0.0.0.0",
		},
		Explorer: ExplorerConfig{
			Root:         "/",
			ShowHidden:   false,
			ScanWorkers:  32,
			WatchEnabled: true,
			SearchLimit:  200,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
