package handler

import (
	"mssql-bridge/internal/server"
)

// Handlers is a container that groups all HTTP handlers, so router
// setup receives one wired object instead of individual handlers.
type Handlers struct {
	Query  *QueryHandler  // Query executes ad hoc SQL statements.
	Health *HealthHandler // Health serves service identity and pool state.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server) *Handlers {
	return &Handlers{
		Query:  NewQueryHandler(s),
		Health: NewHealthHandler(s),
	}
}
