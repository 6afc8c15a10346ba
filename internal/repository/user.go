package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/ticketdesk/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userCols = `id, email, name, created_at`

// GetByEmail returns the user registered with email, or nil if none exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userCols+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
