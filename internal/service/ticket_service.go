package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eventtix/eventtix/internal/cache"
	"github.com/eventtix/eventtix/internal/model"
	"github.com/eventtix/eventtix/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TicketService orchestrates the ticket lifecycle: purchase reserves capacity
// and creates the record, cancel deletes the record and releases capacity.
// Each pair must commit together; when the second step fails, the first is
// undone by a compensating call before the error surfaces.
type TicketService struct {
	tickets repository.TicketRepository
	events  repository.EventRepository
	users   repository.UserRepository
	cache   *cache.EventCache
}

// NewTicketService constructs a TicketService. cache may be nil.
func NewTicketService(
	tickets repository.TicketRepository,
	events repository.EventRepository,
	users repository.UserRepository,
	c *cache.EventCache,
) *TicketService {
	return &TicketService{tickets: tickets, events: events, users: users, cache: c}
}

// Purchase buys quantity tickets for the acting user against eventID.
//
// The capacity reservation happens first and is the only contended step; on
// any later failure the reservation is released so no seats leak.
func (s *TicketService) Purchase(ctx context.Context, actingUserID, eventID string, quantity int) (*model.Ticket, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", model.ErrValidation)
	}
	if eventID == "" {
		return nil, fmt.Errorf("%w: event_id is required", model.ErrValidation)
	}

	user, err := s.users.GetByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("load purchaser: %w", err)
	}

	snapshot, err := s.events.Reserve(ctx, eventID, quantity)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, eventID)

	ticket := &model.Ticket{
		ID:       uuid.New().String(),
		UserID:   user.ID,
		EventID:  snapshot.ID,
		Quantity: quantity,
		Details: model.TicketDetails{
			Name:        user.Name,
			Email:       user.Email,
			EventName:   snapshot.Title,
			EventDate:   snapshot.EventDate,
			EventTime:   snapshot.EventTime,
			TicketPrice: snapshot.TicketPrice,
			Location:    snapshot.Location,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		// Compensate the committed reservation so no capacity leaks.
		if _, relErr := s.events.Release(ctx, eventID, quantity); relErr != nil {
			logrus.WithError(relErr).WithField("event_id", eventID).
				Error("compensating release failed, capacity counters need repair")
		}
		s.cache.Invalidate(ctx, eventID)
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return ticket, nil
}

// ListForUser returns targetUserID's tickets. Only the owner may list their
// own tickets.
func (s *TicketService) ListForUser(ctx context.Context, actingUserID, targetUserID string) ([]model.Ticket, error) {
	if !Authorize(actingUserID, targetUserID) {
		return nil, model.ErrForbidden
	}
	return s.tickets.ListByUser(ctx, targetUserID)
}

// Cancel deletes the ticket and returns its seats to the event. Cancellation
// is terminal: a second cancel of the same ticket fails with
// model.ErrNotFound.
func (s *TicketService) Cancel(ctx context.Context, actingUserID, ticketID string) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if !Authorize(actingUserID, ticket.UserID) {
		return model.ErrForbidden
	}

	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		return err
	}
	if _, err := s.events.Release(ctx, ticket.EventID, ticket.Quantity); err != nil {
		// Compensate: put the ticket back so record and counters stay in step.
		if crErr := s.tickets.Create(ctx, ticket); crErr != nil {
			logrus.WithError(crErr).WithField("ticket_id", ticketID).
				Error("compensating ticket re-create failed after release error")
		}
		return fmt.Errorf("release capacity: %w", err)
	}
	s.cache.Invalidate(ctx, ticket.EventID)
	return nil
}
