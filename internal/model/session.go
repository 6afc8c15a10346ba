package model

import "time"

// Session grants bearer-token access. A ticket session is never staff and is
// scoped to a single ticket number.
type Session struct {
	Token        string    `json:"token"`
	UserID       *int64    `json:"userId"`
	Staff        bool      `json:"staff"`
	TicketNumber *int64    `json:"ticketNumber,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// NewSession describes a session to create.
type NewSession struct {
	UserID       *int64
	Staff        bool
	TicketNumber *int64
}
