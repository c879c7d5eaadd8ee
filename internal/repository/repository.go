// Package repository defines persistence interfaces for the ticketing system
// and implements them against PostgreSQL using pgx directly (no ORM).
//
// The capacity counters on events are mutated exclusively through
// EventRepository.Reserve and EventRepository.Release; every implementation
// must make the check-and-mutate step indivisible per event.
package repository

import (
	"context"

	"github.com/eventtix/eventtix/internal/model"
)

// UserRepository handles persistence for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken when the email
	// is already registered (emails are stored lower-cased).
	Create(ctx context.Context, user *model.User) error
	// GetByEmail returns the user with the given email or model.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByID returns the user with the given id or model.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// EventRepository handles persistence for events, including the capacity
// ledger.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)

	// Reserve atomically checks quantity against AvailableTickets and, if it
	// fits, moves quantity seats from available to current participants,
	// returning the post-mutation event. Two concurrent reservations must
	// never both succeed when their combined quantity exceeds availability.
	// Fails with model.ErrNotFound or model.ErrInsufficientTickets.
	Reserve(ctx context.Context, eventID string, quantity int) (*model.Event, error)

	// Release is the inverse of Reserve: it returns quantity seats from
	// current participants to available. The caller passes exactly the
	// quantity the cancelled ticket originally reserved.
	Release(ctx context.Context, eventID string, quantity int) (*model.Event, error)
}

// TicketRepository handles persistence for purchased tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	// GetByID returns the ticket or model.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	// ListByUser returns the user's tickets in creation order.
	ListByUser(ctx context.Context, userID string) ([]model.Ticket, error)
	// Delete removes the ticket or returns model.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
