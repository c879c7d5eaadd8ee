// Package model defines the core domain types for the event ticketing system.
package model

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Event represents a ticketed event created by an owner.
//
// AvailableTickets and CurrentParticipants are capacity counters owned by the
// event repository: after any committed mutation they satisfy
// 0 <= AvailableTickets <= MaxParticipants and
// AvailableTickets + CurrentParticipants == MaxParticipants.
// No code outside the repository's Reserve/Release may write them.
type Event struct {
	ID                  string    `json:"id"`
	OwnerID             string    `json:"owner"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	OrganizedBy         string    `json:"organized_by"`
	EventDate           time.Time `json:"event_date"`
	EventTime           string    `json:"event_time"`
	Location            string    `json:"location"`
	MaxParticipants     int       `json:"max_participants"`
	TicketPrice         float64   `json:"ticket_price"`
	AvailableTickets    int       `json:"available_tickets"`
	CurrentParticipants int       `json:"current_participants"`
	CreatedAt           time.Time `json:"created_at"`
}

// Remaining returns the number of tickets still for sale.
func (e *Event) Remaining() int {
	return e.AvailableTickets
}

// IsSoldOut returns true when no tickets remain.
func (e *Event) IsSoldOut() bool {
	return e.AvailableTickets <= 0
}

// TicketDetails is the denormalized snapshot of event and purchaser taken at
// purchase time, so the ticket stays readable even if the event changes.
type TicketDetails struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	EventName   string    `json:"event_name"`
	EventDate   time.Time `json:"event_date"`
	EventTime   string    `json:"event_time"`
	TicketPrice float64   `json:"ticket_price"`
	Location    string    `json:"location"`
}

// Ticket represents a committed purchase of one or more seats for an event.
type Ticket struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	EventID   string        `json:"event_id"`
	Quantity  int           `json:"quantity"`
	Details   TicketDetails `json:"ticket_details"`
	CreatedAt time.Time     `json:"created_at"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateEventRequest is the payload for publishing a new event.
// EventDate uses the YYYY-MM-DD form.
//
// AvailableTickets at 0 — whether omitted or explicit — means "sell every
// seat": it is replaced by MaxParticipants. An event that starts sold out
// cannot be expressed, which is fine: such an event could never sell a
// ticket.
type CreateEventRequest struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	OrganizedBy      string  `json:"organized_by"`
	EventDate        string  `json:"event_date"`
	EventTime        string  `json:"event_time"`
	Location         string  `json:"location"`
	MaxParticipants  int     `json:"max_participants"`
	TicketPrice      float64 `json:"ticket_price"`
	AvailableTickets int     `json:"available_tickets"`
}

// PurchaseRequest is the payload for buying tickets.
type PurchaseRequest struct {
	EventID  string `json:"event_id"`
	Quantity int    `json:"quantity"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
