package service

import (
	"github.com/deppfellow/ticketdesk/internal/repository"
	"github.com/deppfellow/ticketdesk/internal/server"
)

type Services struct {
	Auth   *AuthService
	System *SystemService
	Ticket *TicketService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	system := NewSystemService(s.Logger, repos.Settings, s.Config.Access.MandatoryLogin)

	// A nil *JobService must not end up inside a non-nil interface.
	var notifier AccessNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Auth:   NewAuthService(s),
		System: system,
		Ticket: NewTicketService(s.Logger, system, repos.Tickets, repos.Users, repos.Sessions, notifier),
	}
}
