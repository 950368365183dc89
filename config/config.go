// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Transports the MCP server can run on.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds the parse-tool process configuration.
type Config struct {
	// BaseURL of the paid parse service.
	BaseURL string

	// Endpoint is the parse endpoint path under BaseURL.
	Endpoint string

	// HTTPTimeout bounds each whole exchange, payment retry included.
	HTTPTimeout time.Duration

	// LogLevel is the zap level name: debug, info, warn, error.
	LogLevel string

	// Transport selects how the MCP server is served: stdio or http.
	Transport string

	// ListenAddr is the bind address for the http transport.
	ListenAddr string
}

// Load reads configuration from the environment. A .env file is loaded
// first when present; missing values fall back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:    getEnvOrDefault("PARSEPRO_BASE_URL", "https://x402.api.netmind.ai"),
		Endpoint:   getEnvOrDefault("PARSEPRO_ENDPOINT", "/inference-api/agent/v1/parse-pdf"),
		LogLevel:   getEnvOrDefault("PARSEPRO_LOG_LEVEL", "info"),
		Transport:  getEnvOrDefault("PARSEPRO_TRANSPORT", TransportStdio),
		ListenAddr: getEnvOrDefault("PARSEPRO_LISTEN_ADDR", ":8080"),
	}

	timeout := getEnvOrDefault("PARSEPRO_HTTP_TIMEOUT", "60s")
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid PARSEPRO_HTTP_TIMEOUT %q: %w", timeout, err)
	}
	cfg.HTTPTimeout = d

	if cfg.Transport != TransportStdio && cfg.Transport != TransportHTTP {
		return nil, fmt.Errorf("invalid PARSEPRO_TRANSPORT %q: must be %q or %q",
			cfg.Transport, TransportStdio, TransportHTTP)
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
