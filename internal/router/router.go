// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the route groups,
// mapping paths to their handlers.
package router

import (
	"github.com/deppfellow/product-catalog/internal/handler"
	"github.com/deppfellow/product-catalog/internal/middleware"
	"github.com/deppfellow/product-catalog/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain,
// the error funnel, system routes and product routes.
//
// Middleware order matters:
//   - RequestID first, so every later layer sees the id
//   - New Relic before EnhanceTracing and ContextEnhancer, which read the transaction
//   - ContextEnhancer before anything that logs
//   - Recover last, so panics are turned into errors the layers above observe
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Instrument(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h, middlewares.Metrics)
	registerProductRoutes(router, h)

	return router
}
