package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/ticketdesk/internal/model"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps sessions in Redis as JSON under session:<token>,
// expiring after ttl.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// generateToken returns 32 crypto-random bytes, hex-encoded.
func generateToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(tokenBytes), nil
}

// Create stores a new session with a fresh token.
func (s *SessionStore) Create(ctx context.Context, params model.NewSession) (*model.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &model.Session{
		Token:        token,
		UserID:       params.UserID,
		Staff:        params.Staff,
		TicketNumber: params.TicketNumber,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	// NX guards against overwriting an existing session on a token collision.
	ok, err := s.client.SetNX(ctx, sessionKey(token), payload, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return nil, errors.New("store session: token collision")
	}

	return session, nil
}
