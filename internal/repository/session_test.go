package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/ticketdesk/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSessionStore(client, ttl), mr
}

func TestSessionCreate(t *testing.T) {
	store, mr := setupSessionStore(t, time.Hour)
	ctx := context.Background()

	userID := int64(42)
	ticketNumber := int64(123456)
	sess, err := store.Create(ctx, model.NewSession{UserID: &userID, TicketNumber: &ticketNumber})
	require.NoError(t, err)

	assert.Len(t, sess.Token, 64) // 32 bytes hex-encoded
	assert.False(t, sess.Staff)
	assert.Equal(t, time.Hour, sess.ExpiresAt.Sub(sess.CreatedAt))
	assert.True(t, mr.Exists("session:"+sess.Token))
	assert.Equal(t, time.Hour, mr.TTL("session:"+sess.Token))
}

func TestSessionStoredAsJSON(t *testing.T) {
	store, mr := setupSessionStore(t, time.Hour)
	ctx := context.Background()

	ticketNumber := int64(7)
	created, err := store.Create(ctx, model.NewSession{TicketNumber: &ticketNumber})
	require.NoError(t, err)

	payload, err := mr.Get("session:" + created.Token)
	require.NoError(t, err)

	var stored model.Session
	require.NoError(t, json.Unmarshal([]byte(payload), &stored))
	assert.Equal(t, created.Token, stored.Token)
	assert.Nil(t, stored.UserID)
	assert.False(t, stored.Staff)
	require.NotNil(t, stored.TicketNumber)
	assert.Equal(t, int64(7), *stored.TicketNumber)
}

func TestSessionTokensAreUnique(t *testing.T) {
	store, _ := setupSessionStore(t, time.Hour)
	ctx := context.Background()

	a, err := store.Create(ctx, model.NewSession{})
	require.NoError(t, err)
	b, err := store.Create(ctx, model.NewSession{})
	require.NoError(t, err)

	assert.NotEqual(t, a.Token, b.Token)
}

func TestSessionExpires(t *testing.T) {
	store, mr := setupSessionStore(t, time.Minute)
	ctx := context.Background()

	created, err := store.Create(ctx, model.NewSession{})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	assert.False(t, mr.Exists("session:"+created.Token))
}
