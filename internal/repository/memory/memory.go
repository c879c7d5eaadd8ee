// Package memory provides in-memory implementations of the repository
// interfaces. They back the "memory" database driver for local development
// and serve as fast test doubles; the capacity ledger uses a per-event mutex
// to give Reserve/Release the same indivisible check-and-mutate semantics as
// the SQL row lock.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/eventtix/eventtix/internal/model"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewUserRepository constructs an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]model.User)}
}

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return model.ErrEmailTaken
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := u
	return &cp, nil
}

// EventRepository is an in-memory repository.EventRepository.
//
// Capacity mutations serialize on a per-event mutex so that two concurrent
// reservations can never both pass the availability check; operations on
// different events do not contend.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]model.Event

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewEventRepository constructs an empty EventRepository.
func NewEventRepository() *EventRepository {
	return &EventRepository{
		events: make(map[string]model.Event),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (r *EventRepository) lockFor(eventID string) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()
	l, ok := r.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[eventID] = l
	}
	return l
}

func (r *EventRepository) Create(_ context.Context, event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID] = *event
	return nil
}

func (r *EventRepository) List(_ context.Context) ([]model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]model.Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := e
	return &cp, nil
}

func (r *EventRepository) Reserve(ctx context.Context, eventID string, quantity int) (*model.Event, error) {
	if quantity < 1 {
		return nil, model.ErrInsufficientTickets
	}
	return r.adjust(eventID, quantity, true)
}

func (r *EventRepository) Release(ctx context.Context, eventID string, quantity int) (*model.Event, error) {
	return r.adjust(eventID, -quantity, false)
}

func (r *EventRepository) adjust(eventID string, delta int, checkCapacity bool) (*model.Event, error) {
	lock := r.lockFor(eventID)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[eventID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if checkCapacity && delta > e.AvailableTickets {
		return nil, model.ErrInsufficientTickets
	}
	e.AvailableTickets -= delta
	e.CurrentParticipants += delta
	r.events[eventID] = e
	cp := e
	return &cp, nil
}

// TicketRepository is an in-memory repository.TicketRepository.
type TicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]model.Ticket
	order   []string
}

// NewTicketRepository constructs an empty TicketRepository.
func NewTicketRepository() *TicketRepository {
	return &TicketRepository{tickets: make(map[string]model.Ticket)}
}

func (r *TicketRepository) Create(_ context.Context, ticket *model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[ticket.ID] = *ticket
	r.order = append(r.order, ticket.ID)
	return nil
}

func (r *TicketRepository) GetByID(_ context.Context, id string) (*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := t
	return &cp, nil
}

func (r *TicketRepository) ListByUser(_ context.Context, userID string) ([]model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var tickets []model.Ticket
	for _, id := range r.order {
		t, ok := r.tickets[id]
		if ok && t.UserID == userID {
			tickets = append(tickets, t)
		}
	}
	return tickets, nil
}

func (r *TicketRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.tickets, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
