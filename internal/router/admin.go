package router

import (
	"net/http"

	"github.com/deppfellow/ticketdesk/internal/handler"
	"github.com/deppfellow/ticketdesk/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerAdminRoutes registers the settings endpoints, restricted to
// organization admins.
func registerAdminRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	system := r.Group("/system", mw.Auth.RequireAuth, mw.Auth.RequireRole(middleware.AdminRole))

	system.POST("/enable-mandatory-login",
		handler.Handle(h.System.Handler, h.System.EnableMandatoryLogin, http.StatusOK))
	system.POST("/disable-mandatory-login",
		handler.Handle(h.System.Handler, h.System.DisableMandatoryLogin, http.StatusOK))
}
