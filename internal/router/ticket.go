package router

import (
	"net/http"

	"github.com/deppfellow/ticketdesk/internal/handler"
	"github.com/deppfellow/ticketdesk/internal/middleware"
	"github.com/labstack/echo/v4"
)

func registerTicketRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	tickets := r.Group("/ticket")
	tickets.POST("/check",
		handler.Handle(h.Ticket.Handler, h.Ticket.CheckTicket, http.StatusOK),
		mw.RateLimit.TicketCheck(),
	)
}
