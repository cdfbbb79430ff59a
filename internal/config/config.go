// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), maps them into structured Go types, and
// validates that required values are present so they can be reused
// across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional values (port, log level, env).
package config

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env,
	// if one exists, before any env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"required"` tags are used by go-playground/validator
// to enforce that the config is present and populated.
type Config struct {
	// Env is the runtime environment label. Anything other than
	// "production" exposes error details (stack traces) to clients.
	Env      string         `koanf:"env"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	Port string `koanf:"port" validate:"required"`
}

// DatabaseConfig contains SQL Server connection parameters.
//
// Pool tuning (bounds, timeouts) is fixed rather than configurable;
// see the database package constants.
type DatabaseConfig struct {
	Server   string `koanf:"server" validate:"required"`
	Name     string `koanf:"name" validate:"required"`
	Username string `koanf:"username" validate:"required"`
	Password string `koanf:"password" validate:"required"`
	Port     int    `koanf:"port" validate:"required"`

	// Encrypt and TrustServerCertificate follow the "true"/anything-else
	// convention of the deployments this service replaces: only the exact
	// string "true" enables the flag.
	Encrypt                bool `koanf:"encrypt"`
	TrustServerCertificate bool `koanf:"trust_server_certificate"`
}

// envKeys maps the flat legacy env var names onto nested koanf keys.
//
// The names (MSSQL_*, PORT, NODE_ENV) are kept verbatim for drop-in
// compatibility with existing deployments of this service.
var envKeys = map[string]string{
	"PORT":                           "server.port",
	"NODE_ENV":                       "env",
	"LOG_LEVEL":                      "logging.level",
	"MSSQL_SERVER":                   "database.server",
	"MSSQL_DATABASE":                 "database.name",
	"MSSQL_USERNAME":                 "database.username",
	"MSSQL_PASSWORD":                 "database.password",
	"MSSQL_PORT":                     "database.port",
	"MSSQL_ENCRYPT":                  "database.encrypt",
	"MSSQL_TRUST_SERVER_CERTIFICATE": "database.trust_server_certificate",
}

// boolKeys are env vars parsed with the strict "true"/else-false rule.
var boolKeys = map[string]bool{
	"MSSQL_ENCRYPT":                  true,
	"MSSQL_TRUST_SERVER_CERTIFICATE": true,
}

// Load reads configuration from environment variables, unmarshals it
// into Config, applies defaults, and validates it.
//
// Behavior summary:
//   - Reads only the env vars listed in envKeys; everything else is ignored.
//   - Boolean flags are true only for the exact value "true".
//   - MSSQL_PORT must be an integer if set.
//   - Missing required database fields fail Load, so the process can
//     exit before binding the listen port.
func Load() (*Config, error) {
	k := koanf.New(".")

	var parseErr error
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		mapped, ok := envKeys[key]
		if !ok || value == "" {
			// Unknown vars and empty values are dropped; defaults
			// fill in the gaps after unmarshaling.
			return "", nil
		}
		if boolKeys[key] {
			return mapped, value == "true"
		}
		if key == "MSSQL_PORT" {
			port, err := strconv.Atoi(value)
			if err != nil {
				parseErr = fmt.Errorf("MSSQL_PORT must be an integer, got %q", value)
				return "", nil
			}
			return mapped, port
		}
		return mapped, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}
	if parseErr != nil {
		return nil, parseErr
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "3000"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 1433
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// IsProduction reports whether the service runs in production mode.
// Error responses include stack traces only when this is false.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
