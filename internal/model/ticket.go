// Package model holds the domain records shared by repositories,
// services and handlers.
package model

import "time"

// Ticket is a support request. Only the fields the access flow reads are
// mapped; the rest of the row belongs to the ticketing system.
type Ticket struct {
	ID           int64     `db:"id" json:"id"`
	TicketNumber int64     `db:"ticket_number" json:"ticketNumber"`
	Title        string    `db:"title" json:"title"`
	AuthorEmail  string    `db:"author_email" json:"authorEmail"`
	AuthorName   string    `db:"author_name" json:"authorName"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// User is a registered customer account.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
