// Package logger configures the application's structured logging.
//
// It uses zerolog for logging: JSON output in production (so log
// pipelines can ingest it directly) and a human-friendly console
// writer everywhere else. Error stacks captured with pkg/errors are
// marshaled into log events via the pkgerrors integration.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"mssql-bridge/internal/config"
)

// New builds the root application logger from config.
//
// The returned logger carries the service name and environment on
// every event; request-scoped fields are added later by middleware.
func New(cfg *config.Config) *zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var out io.Writer = os.Stderr
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	logger := zerolog.New(out).
		Level(cfg.Logging.ZerologLevel()).
		With().
		Timestamp().
		Str("service", "mssql-bridge").
		Str("env", cfg.Env).
		Logger()

	return &logger
}
