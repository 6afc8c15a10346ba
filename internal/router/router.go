// Package router builds the Echo instance: global middleware in order,
// then the route groups.
package router

import (
	"github.com/deppfellow/ticketdesk/internal/handler"
	"github.com/deppfellow/ticketdesk/internal/middleware"
	"github.com/deppfellow/ticketdesk/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	router.IPExtractor = ipExtractor(s.Config.Server.TrustedProxies)

	// Order matters: the transaction and the request id must exist before
	// tracing attributes and the context logger read them.
	router.Use(
		mw.Tracing.NewRelicMiddleware(),
		middleware.RequestID(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerTicketRoutes(router, h, mw)
	registerAdminRoutes(router, h, mw)

	return router
}
