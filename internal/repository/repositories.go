package repository

import (
	"github.com/deppfellow/ticketdesk/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Tickets  *TicketRepository
	Users    *UserRepository
	Settings *SettingRepository
	Sessions *SessionStore
}

// NewRepositories constructs the repository container from the shared
// PostgreSQL pool and Redis client.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Tickets:  NewTicketRepository(s.DB.Pool),
		Users:    NewUserRepository(s.DB.Pool),
		Settings: NewSettingRepository(s.DB.Pool),
		Sessions: NewSessionStore(s.Redis, s.Config.Access.SessionTTL),
	}
}
