package handler

import (
	"github.com/deppfellow/ticketdesk/internal/server"
	"github.com/deppfellow/ticketdesk/internal/service"
)

// Handlers groups all HTTP handlers so router setup takes a single value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Ticket  *TicketHandler
	System  *SystemHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Ticket:  NewTicketHandler(s, services.Ticket),
		System:  NewSystemHandler(s, services.System),
	}
}
