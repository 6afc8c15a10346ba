// Package repository handles all interactions with the data stores.
//
// Tickets, users and settings live in PostgreSQL and are queried with pgx;
// sessions live in Redis. Lookups of a missing record return (nil, nil).
package repository
