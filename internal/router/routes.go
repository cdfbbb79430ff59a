package router

import (
	"github.com/labstack/echo/v4"

	"mssql-bridge/internal/handler"
)

// registerRoutes maps the service's three operations.
func registerRoutes(e *echo.Echo, h *handler.Handlers) {
	// Service identity plus pool state.
	e.GET("/", h.Health.Root)
	e.GET("/health", h.Health.Check)

	// Ad hoc query execution.
	e.POST("/", h.Query.Execute)
}
