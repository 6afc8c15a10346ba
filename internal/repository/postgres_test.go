package repository

import (
	"context"
	"os"
	"testing"

	"github.com/deppfellow/ticketdesk/internal/database"
	"github.com/deppfellow/ticketdesk/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPool connects to TICKETDESK_TEST_DATABASE_URL, migrates it and empties
// the tables. Tests are skipped when the variable is not set.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TICKETDESK_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TICKETDESK_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	logger := zerolog.Nop()
	require.NoError(t, database.MigrateURL(ctx, &logger, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE tickets, users, settings RESTART IDENTITY`)
	require.NoError(t, err)

	return pool
}

func TestTicketGetByNumber(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO tickets (ticket_number, title, author_email, author_name) VALUES ($1, $2, $3, $4)`,
		int64(123456), "Printer on fire", "Ann@Example.com", "Ann")
	require.NoError(t, err)

	repo := NewTicketRepository(pool)

	ticket, err := repo.GetByNumber(ctx, 123456)
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.Equal(t, "Ann@Example.com", ticket.AuthorEmail)
	assert.Equal(t, "Printer on fire", ticket.Title)

	missing, err := repo.GetByNumber(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserGetByEmailIsExact(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `INSERT INTO users (email, name) VALUES ($1, $2)`, "ann@example.com", "Ann")
	require.NoError(t, err)

	repo := NewUserRepository(pool)

	user, err := repo.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ann", user.Name)

	other, err := repo.GetByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestSettingGetSet(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := NewSettingRepository(pool)

	_, ok, err := repo.Get(ctx, model.SettingMandatoryLogin)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, model.SettingMandatoryLogin, "1"))
	require.NoError(t, repo.Set(ctx, model.SettingMandatoryLogin, "0"))

	value, ok, err := repo.Get(ctx, model.SettingMandatoryLogin)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "0", value)
}
