// Package testutil provides in-memory fakes and a ready-made server
// container for handler, service and router tests.
package testutil

import (
	"io"
	"testing"

	"github.com/deppfellow/product-catalog/internal/config"
	"github.com/deppfellow/product-catalog/internal/logger"
	"github.com/deppfellow/product-catalog/internal/server"
	"github.com/rs/zerolog"
)

// NewTestConfig returns a valid configuration that points at nothing real.
func NewTestConfig() *config.Config {
	observability := config.DefaultObservabilityConfig()
	observability.Environment = "test"

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			Host:            "127.0.0.1",
			Port:            5432,
			User:            "catalog",
			Password:        "catalog",
			Name:            "catalog_test",
			SSLMode:         "disable",
			MaxOpenConns:    2,
			MaxIdleConns:    1,
			ConnMaxLifetime: 60,
			ConnMaxIdleTime: 60,
		},
		Jobs:          config.DefaultJobsConfig(),
		Observability: observability,
	}
}

// NewTestServer returns a server container with a discarding logger and no
// database, Redis or job worker. Tests attach what they need.
func NewTestServer(t *testing.T) *server.Server {
	t.Helper()

	log := zerolog.New(io.Discard)
	return &server.Server{
		Config:        NewTestConfig(),
		Logger:        &log,
		LoggerService: logger.NewLoggerService(&config.ObservabilityConfig{}),
	}
}
