package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/ticketdesk/internal/errs"
	"github.com/deppfellow/ticketdesk/internal/model"
	"github.com/rs/zerolog"
)

// LoginPolicy reports whether visitors must log in before they can reach a
// ticket anonymously.
type LoginPolicy interface {
	IsLoginMandatory(ctx context.Context) (bool, error)
}

// AccessNotifier tells a ticket author that their ticket was opened.
type AccessNotifier interface {
	EnqueueTicketAccessEmail(ctx context.Context, to string, ticketNumber int64) error
}

type ticketFinder interface {
	GetByNumber(ctx context.Context, ticketNumber int64) (*model.Ticket, error)
}

type userFinder interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type sessionCreator interface {
	Create(ctx context.Context, params model.NewSession) (*model.Session, error)
}

// TicketService grants anonymous, ticket-scoped sessions.
type TicketService struct {
	logger   *zerolog.Logger
	policy   LoginPolicy
	tickets  ticketFinder
	users    userFinder
	sessions sessionCreator
	notifier AccessNotifier
}

// NewTicketService wires the ticket flow. notifier may be nil.
func NewTicketService(
	logger *zerolog.Logger,
	policy LoginPolicy,
	tickets ticketFinder,
	users userFinder,
	sessions sessionCreator,
	notifier AccessNotifier,
) *TicketService {
	return &TicketService{
		logger:   logger,
		policy:   policy,
		tickets:  tickets,
		users:    users,
		sessions: sessions,
		notifier: notifier,
	}
}

// CheckTicketInput carries already validated request fields.
type CheckTicketInput struct {
	TicketNumber int64
	Email        string
}

// CheckTicketResult is the payload of a successful check.
type CheckTicketResult struct {
	Token        string `json:"token"`
	UserID       *int64 `json:"userId"`
	TicketNumber int64  `json:"ticketNumber"`
}

// CheckTicket issues a session for the ticket when the caller knows the
// author's email.
//
// A mandatory login and an email mismatch both produce NO_PERMISSION so the
// response never reveals which of the two applied.
func (s *TicketService) CheckTicket(ctx context.Context, in CheckTicketInput) (*CheckTicketResult, error) {
	mandatory, err := s.policy.IsLoginMandatory(ctx)
	if err != nil {
		return nil, fmt.Errorf("check login policy: %w", err)
	}
	if mandatory {
		return nil, errs.NewNoPermissionError()
	}

	ticket, err := s.tickets.GetByNumber(ctx, in.TicketNumber)
	if err != nil {
		return nil, fmt.Errorf("load ticket: %w", err)
	}
	if ticket == nil {
		return nil, errs.NewInvalidTicketError()
	}

	if in.Email != ticket.AuthorEmail {
		s.logger.Info().
			Int64("ticket_number", in.TicketNumber).
			Msg("ticket check rejected: email does not match author")
		return nil, errs.NewNoPermissionError()
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	var userID *int64
	if user != nil {
		id := user.ID
		userID = &id
	}

	ticketNumber := ticket.TicketNumber
	session, err := s.sessions.Create(ctx, model.NewSession{
		UserID:       userID,
		Staff:        false,
		TicketNumber: &ticketNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info().
		Int64("ticket_number", ticketNumber).
		Bool("known_user", userID != nil).
		Msg("ticket session issued")

	if s.notifier != nil {
		if err := s.notifier.EnqueueTicketAccessEmail(ctx, ticket.AuthorEmail, ticketNumber); err != nil {
			s.logger.Error().Err(err).
				Int64("ticket_number", ticketNumber).
				Msg("failed to enqueue ticket access email")
		}
	}

	return &CheckTicketResult{
		Token:        session.Token,
		UserID:       userID,
		TicketNumber: ticketNumber,
	}, nil
}
