package router

import (
	"github.com/deppfellow/product-catalog/internal/handler"
	"github.com/deppfellow/product-catalog/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the catalog
// itself: health, metrics, docs UI and the static assets the docs load.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, metrics *middleware.MetricsMiddleware) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
