// Package server holds the application container: configuration, loggers,
// optional backend connections, the background job service and the
// http.Server, together with their start and shutdown logic.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/booking/internal/config"
	"github.com/deppfellow/booking/internal/database"
	"github.com/deppfellow/booking/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/booking/internal/logger"
)

// RedisPingTimeout bounds the startup connectivity check.
const RedisPingTimeout = 5 * time.Second

// Server is the application container shared by every layer.
//
// DB is set only for the postgres storage driver, Redis only when
// redis.address is configured, and Job only when notifications are enabled.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	DB    *database.Database
	Redis *redis.Client
	Job   *job.JobService

	httpServer *http.Server
}

// New connects the dependencies the configuration asks for.
//
// A failed database connection aborts startup. A failed Redis ping aborts
// startup only when Redis holds the dataset; otherwise it is logged and the
// client is kept, so /status reports the outage.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}

	if cfg.Storage.Driver == config.StoragePostgres {
		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.DB = db
	}

	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Address,
		})

		if loggerService.GetApplication() != nil {
			redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			if cfg.Storage.Driver == config.StorageRedis {
				redisClient.Close()
				s.closeDB()
				return nil, fmt.Errorf("failed to connect to redis: %w", err)
			}
			logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without it")
		}
		s.Redis = redisClient
	}

	if cfg.NotificationsEnabled() {
		jobService := job.NewJobService(logger, cfg)
		if err := jobService.Start(); err != nil {
			s.closeRedis()
			s.closeDB()
			return nil, fmt.Errorf("failed to start job service: %w", err)
		}
		s.Job = jobService
	} else {
		logger.Info().Msg("booking notifications disabled")
	}

	return s, nil
}

// SetupHTTPServer configures the http.Server that Start runs.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("storage", s.Config.Storage.Driver).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and releases every dependency.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	s.closeRedis()

	if err := s.closeDB(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}

func (s *Server) closeDB() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func (s *Server) closeRedis() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Close(); err != nil {
		s.Logger.Error().Err(err).Msg("failed to close redis client")
	}
}
