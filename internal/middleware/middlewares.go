// Package middleware contains the HTTP middleware stack: request
// correlation IDs, request-scoped loggers, request logging, CORS, body
// limits, panic recovery, and the global error handler that converts
// every failure into the service's JSON error shape.
package middleware

import (
	"mssql-bridge/internal/server"
)

// Middlewares is a lightweight container that groups all middleware
// components used by the HTTP server, so router setup receives a
// single wired object.
type Middlewares struct {
	// Global holds middleware used across the whole API: CORS, body
	// limit, request logging, recovery, secure headers, and the global
	// error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped
	// logger (request_id, method, path, ip).
	ContextEnhancer *ContextEnhancer
}

// NewMiddlewares constructs all middleware components using the
// application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
	}
}
