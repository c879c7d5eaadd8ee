package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventtix/eventtix/internal/cache"
	"github.com/eventtix/eventtix/internal/model"
	"github.com/eventtix/eventtix/internal/repository"
	"github.com/google/uuid"
)

// EventService handles event publishing and lookups. Capacity counters are
// set once at creation here; afterwards only the ticket flows may touch them.
type EventService struct {
	events repository.EventRepository
	cache  *cache.EventCache
}

// NewEventService constructs an EventService. cache may be nil.
func NewEventService(events repository.EventRepository, c *cache.EventCache) *EventService {
	return &EventService{events: events, cache: c}
}

// Create validates the request and publishes an event owned by ownerID.
// AvailableTickets at 0 (omitted or explicit) becomes MaxParticipants;
// a positive value must fit within capacity, and CurrentParticipants starts
// at the difference so the counters satisfy their invariant from the first
// commit.
func (s *EventService) Create(ctx context.Context, ownerID string, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if req.MaxParticipants <= 0 {
		return nil, fmt.Errorf("%w: max_participants must be a positive integer", model.ErrValidation)
	}
	if req.MaxParticipants > 100_000 {
		return nil, fmt.Errorf("%w: max_participants cannot exceed 100,000", model.ErrValidation)
	}
	if req.TicketPrice < 0 {
		return nil, fmt.Errorf("%w: ticket_price cannot be negative", model.ErrValidation)
	}

	available := req.AvailableTickets
	if available == 0 {
		available = req.MaxParticipants
	}
	if available < 0 || available > req.MaxParticipants {
		return nil, fmt.Errorf("%w: available_tickets must be between 0 and max_participants", model.ErrValidation)
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: event_date must be YYYY-MM-DD", model.ErrValidation)
	}

	event := &model.Event{
		ID:                  uuid.New().String(),
		OwnerID:             ownerID,
		Title:               req.Title,
		Description:         req.Description,
		OrganizedBy:         req.OrganizedBy,
		EventDate:           eventDate,
		EventTime:           req.EventTime,
		Location:            req.Location,
		MaxParticipants:     req.MaxParticipants,
		TicketPrice:         req.TicketPrice,
		AvailableTickets:    available,
		CurrentParticipants: req.MaxParticipants - available,
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, event.ID)
	return event, nil
}

// List returns all events, newest first.
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	if events, ok := s.cache.GetList(ctx); ok {
		return events, nil
	}
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetList(ctx, events)
	return events, nil
}

// Get returns a single event by id.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: event id is required", model.ErrValidation)
	}
	if event, ok := s.cache.GetEvent(ctx, id); ok {
		return event, nil
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetEvent(ctx, event)
	return event, nil
}
