// Package testhelpers builds application containers backed by a temporary data
// file for use in tests.
package testhelpers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/deppfellow/booking/internal/config"
	"github.com/deppfellow/booking/internal/logger"
	"github.com/deppfellow/booking/internal/repository"
	"github.com/deppfellow/booking/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// TestConfig returns a valid configuration using the file driver at path.
func TestConfig(path string) *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"
	obs.Logging.SlowQueryThreshold = 0

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		Storage: config.StorageConfig{
			Driver: config.StorageFile,
			Path:   path,
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             100,
		},
		Observability: obs,
	}
}

// SetupTestServer returns a server container whose dataset lives in a
// seeded file under t.TempDir, plus the repositories wired to it.
func SetupTestServer(t *testing.T) (*server.Server, *repository.Repositories) {
	t.Helper()

	return SetupTestServerWithConfig(t, TestConfig(filepath.Join(t.TempDir(), "data.json")))
}

// SetupTestServerWithConfig is SetupTestServer with a caller-supplied config.
// Only the file storage driver is supported.
func SetupTestServerWithConfig(t *testing.T, cfg *config.Config) (*server.Server, *repository.Repositories) {
	t.Helper()

	log := zerolog.Nop()
	s := &server.Server{
		Config:        cfg,
		Logger:        &log,
		LoggerService: logger.NewLoggerService(cfg.Observability),
	}

	repos, err := repository.NewRepositories(s)
	require.NoError(t, err)

	_, err = repos.Dataset.EnsureInitialized(context.Background())
	require.NoError(t, err)

	return s, repos
}
