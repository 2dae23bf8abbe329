// Package config loads the application configuration.
//
// Values come from three layers, later ones winning:
//   - built-in defaults
//   - environment variables prefixed with BOOKING_ (a `.env` file is loaded first if present)
//   - the bare PORT variable, which overrides server.port
//
// Nesting uses a double underscore: BOOKING_SERVER__PORT -> server.port,
// BOOKING_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "BOOKING_"

	// ServiceName tags logs, traces and metrics.
	ServiceName = "booking"
)

// Storage drivers.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config is the root configuration object.
//
// Database is validated only when the postgres driver is selected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"-"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// StorageConfig selects where the dataset document lives.
type StorageConfig struct {
	Driver   string `koanf:"driver" validate:"required,oneof=file postgres redis"`
	Path     string `koanf:"path" validate:"required_if=Driver file"`
	RedisKey string `koanf:"redis_key" validate:"required_if=Driver redis"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
// Empty means Redis is not used.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// IntegrationConfig holds third-party credentials.
//
// Booking notifications are sent only when ResendAPIKey is set and Redis is configured.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	NotifyFrom   string `koanf:"notify_from" validate:"omitempty,email"`
}

// RateLimitConfig throttles the credential endpoints per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int     `koanf:"burst" validate:"gt=0"`
}

// NotificationsEnabled reports whether booking emails can be queued and sent.
func (c *Config) NotificationsEnabled() bool {
	return c.Integration.ResendAPIKey != "" && c.Redis.Address != ""
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env": "development",

		"server.port":                 "8787",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},

		"storage.driver":    StorageFile,
		"storage.path":      "data.json",
		"storage.redis_key": "booking:dataset",

		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  300,
		"database.conn_max_idle_time": 300,

		"integration.notify_from": "onboarding@resend.dev",

		"rate_limit.requests_per_second": 1.0,
		"rate_limit.burst":               5,
	}
}

// LoadConfig builds the configuration from defaults and the environment and
// validates it.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load default config: %w", err)
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		if err := k.Set("server.port", port); err != nil {
			return nil, fmt.Errorf("could not apply PORT: %w", err)
		}
	}

	// Observability starts from defaults; keys present in the environment
	// overwrite individual fields.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks struct tags and the rules that span blocks.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch c.Storage.Driver {
	case StoragePostgres:
		if err := validate.Struct(c.Database); err != nil {
			return fmt.Errorf("database config validation failed: %w", err)
		}
	case StorageRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address is required for the %q storage driver", StorageRedis)
		}
	}

	if c.Observability == nil {
		return fmt.Errorf("observability config is missing")
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
