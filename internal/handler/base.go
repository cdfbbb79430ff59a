package handler

import (
	"mssql-bridge/internal/server"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it so they can reach the
// config, logger and database pool via *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. It returns the struct by
// value: the only field is a pointer, so copies still share the same
// Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}
