// Package router initializes the HTTP router (using echo).
//
// It registers the middleware stack and maps paths to their
// corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"mssql-bridge/internal/handler"
	"mssql-bridge/internal/middleware"
	"mssql-bridge/internal/server"
)

// New builds the echo router: global middleware in order, the global
// error handler, and all routes.
func New(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mws := middleware.NewMiddlewares(s)
	e.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	// Recover first so panics anywhere below become 500s; the context
	// enhancer must follow RequestID to pick up the correlation ID.
	e.Use(
		mws.Global.Recover(),
		middleware.RequestID(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Global.RequestLogger(),
		mws.Global.Secure(),
		mws.Global.CORS(),
		mws.Global.BodyLimit(),
	)

	h := handler.NewHandlers(s)
	registerRoutes(e, h)

	return e
}
