// Package httpapi exposes the conversion engine over HTTP: a multipart
// upload endpoint per format pair, a format discovery endpoint, and a
// health check.
package httpapi

import (
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the HTTP service settings, loaded from APICONV_* environment
// variables.
type Config struct {
	ListenAddr      string        `envconfig:"LISTEN_ADDR" default:":8080"`
	MaxUploadBytes  int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads the service configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("apiconv", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParsedLogLevel maps the configured level string onto a slog.Level,
// defaulting to info.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
