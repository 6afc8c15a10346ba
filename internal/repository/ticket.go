package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/ticketdesk/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

const ticketCols = `id, ticket_number, title, author_email, author_name, created_at`

// GetByNumber returns the ticket with the given number, or nil if none exists.
func (r *TicketRepository) GetByNumber(ctx context.Context, ticketNumber int64) (*model.Ticket, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+ticketCols+` FROM tickets WHERE ticket_number = $1`, ticketNumber)
	if err != nil {
		return nil, fmt.Errorf("query ticket: %w", err)
	}

	ticket, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ticket])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan ticket: %w", err)
	}
	return &ticket, nil
}
