// Package commands implements the booking CLI: serve, seed and migrate.
package commands

import (
	"fmt"

	"github.com/deppfellow/booking/internal/config"
	"github.com/deppfellow/booking/internal/logger"
	"github.com/rs/zerolog"
)

// bootstrap loads the configuration and builds the loggers every command
// starts from.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}

func logSeedResult(log *zerolog.Logger, seeded bool, backend string) {
	if seeded {
		log.Info().Str("backend", backend).Msg("dataset not found, wrote seed document")
		return
	}
	log.Debug().Str("backend", backend).Msg("dataset present")
}
