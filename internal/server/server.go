// Package server defines the core Server struct that composes the
// app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger
//   - database pool
//   - http.Server
//
// It provides constructors and start/shutdown logic to run the
// application cleanly.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"mssql-bridge/internal/config"
	"mssql-bridge/internal/database"
)

// HTTP server timeouts. WriteTimeout must outlast the worst case of a
// lazy pool connect plus a full query execution, both bounded at 30s.
const (
	readTimeout  = 30 * time.Second
	writeTimeout = 90 * time.Second
	idleTimeout  = 60 * time.Second
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. It holds the config, the logger,
// the database pool, and an internal *http.Server used to listen and
// serve requests.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger
	DB     *database.Database

	httpServer *http.Server
}

// New constructs a Server and kicks off the eager database connect.
//
// The connect attempt runs in the background: a failure is logged and
// leaves the service degraded (health reports connected:false) rather
// than blocking or aborting startup. The pool retries lazily on the
// first query.
func New(cfg *config.Config, logger *zerolog.Logger) *Server {
	db := database.New(cfg, logger)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), database.ConnectTimeout)
		defer cancel()

		if err := db.Connect(ctx); err != nil {
			logger.Error().Err(err).
				Msg("startup database connection failed, starting degraded; will retry on first request")
		}
	}()

	return &Server{
		Config: cfg,
		Logger: logger,
		DB:     db,
	}
}

// SetupHTTPServer configures the internal net/http server.
// The router (echo) is passed in as the handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
// SetupHTTPServer must be called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its dependencies:
// the HTTP server finishes in-flight requests until the context
// deadline, then the database pool is closed.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}

	return s.DB.Close()
}
