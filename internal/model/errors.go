package model

import "errors"

// Sentinel errors shared across layers. Handlers map these to HTTP statuses
// with errors.Is; everything else surfaces as a generic 500.
var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("invalid input")

	// ErrUnauthorized marks a missing, malformed, or expired session.
	ErrUnauthorized = errors.New("authentication required")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden marks a valid session acting on a resource it does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks an absent resource.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken marks a duplicate registration email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInsufficientTickets marks a reservation exceeding availability
	// or a non-positive quantity.
	ErrInsufficientTickets = errors.New("not enough available tickets")
)
