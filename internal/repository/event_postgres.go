package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventtix/eventtix/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, owner_id, title, description, organized_by,
	event_date, event_time, location, max_participants, ticket_price,
	available_tickets, current_participants, created_at`

// PostgresEventRepository implements EventRepository on pgx.
type PostgresEventRepository struct {
	db *pgxpool.Pool
}

// NewPostgresEventRepository constructs a PostgresEventRepository.
func NewPostgresEventRepository(db *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

// Create inserts a new event with its initial capacity counters.
func (r *PostgresEventRepository) Create(ctx context.Context, event *model.Event) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, owner_id, title, description, organized_by,
			event_date, event_time, location, max_participants, ticket_price,
			available_tickets, current_participants, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		event.ID, event.OwnerID, event.Title, event.Description, event.OrganizedBy,
		event.EventDate, event.EventTime, event.Location, event.MaxParticipants,
		event.TicketPrice, event.AvailableTickets, event.CurrentParticipants,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List returns all events ordered by creation time descending.
func (r *PostgresEventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID returns a single event or model.ErrNotFound.
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err := scanEvent(row, &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// Reserve moves quantity seats from available to current participants inside
// a serialised transaction.
//
// A naive read-then-write here is a race: two transactions can read the same
// counter snapshot and both conclude there is room. SELECT ... FOR UPDATE
// takes a row-level exclusive lock on the event the moment the SELECT runs,
// so concurrent reservations on the same event queue up behind each other
// while different events proceed fully in parallel.
func (r *PostgresEventRepository) Reserve(ctx context.Context, eventID string, quantity int) (*model.Event, error) {
	if quantity < 1 {
		return nil, model.ErrInsufficientTickets
	}
	return r.adjust(ctx, eventID, quantity, true)
}

// Release returns quantity seats from current participants to available.
// The caller guarantees quantity equals the original reservation, so the
// counters can never leave their invariant range.
func (r *PostgresEventRepository) Release(ctx context.Context, eventID string, quantity int) (*model.Event, error) {
	return r.adjust(ctx, eventID, -quantity, false)
}

// adjust applies a signed delta to the capacity counters under a row lock.
// delta > 0 reserves seats, delta < 0 releases them.
func (r *PostgresEventRepository) adjust(ctx context.Context, eventID string, delta int, checkCapacity bool) (*model.Event, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	// Ensure the transaction is always resolved.
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Step 1: lock the event row.
	var available int
	err = tx.QueryRow(ctx,
		`SELECT available_tickets FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	// Step 2: guard against overselling while the lock is held.
	if checkCapacity && delta > available {
		err = model.ErrInsufficientTickets
		return nil, err
	}

	// Step 3: apply both counter mutations in one statement.
	var e model.Event
	row := tx.QueryRow(ctx,
		`UPDATE events
		 SET available_tickets = available_tickets - $2,
		     current_participants = current_participants + $2
		 WHERE id = $1
		 RETURNING `+eventColumns,
		eventID, delta,
	)
	if err = scanEvent(row, &e); err != nil {
		return nil, fmt.Errorf("update capacity: %w", err)
	}

	// Step 4: commit — only now do other transactions see the change.
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &e, nil
}

func scanEvent(row pgx.Row, e *model.Event) error {
	return row.Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.OrganizedBy,
		&e.EventDate, &e.EventTime, &e.Location, &e.MaxParticipants,
		&e.TicketPrice, &e.AvailableTickets, &e.CurrentParticipants,
		&e.CreatedAt,
	)
}
