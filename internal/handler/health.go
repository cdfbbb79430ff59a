package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mssql-bridge/internal/server"
)

// ServiceName identifies this service in health responses and logs.
const ServiceName = "mssql-bridge"

// HealthHandler exposes read-only endpoints reporting static service
// identity plus the pool's current connected flag. External systems
// (load balancers, uptime monitors) use these to verify the service is
// alive; connected:false signals the degraded state after a failed
// startup connect.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler with access to shared
// app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Root handles GET /.
func (h *HealthHandler) Root(c echo.Context) error {
	connected := h.server.DB.Connected()

	return c.JSON(http.StatusOK, map[string]any{
		"status":    statusLabel(connected),
		"service":   ServiceName,
		"message":   "HTTP to SQL Server query bridge",
		"connected": connected,
	})
}

// Check handles GET /health.
func (h *HealthHandler) Check(c echo.Context) error {
	connected := h.server.DB.Connected()

	return c.JSON(http.StatusOK, map[string]any{
		"status":    statusLabel(connected),
		"service":   ServiceName,
		"connected": connected,
	})
}

func statusLabel(connected bool) string {
	if connected {
		return "ok"
	}
	return "degraded"
}
