package router

import (
	"github.com/deppfellow/ticketdesk/internal/handler"
	"github.com/deppfellow/ticketdesk/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers health and documentation endpoints.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.StaticFS("/static", static.Files)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
