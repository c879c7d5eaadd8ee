package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventtix/eventtix/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTicketRepository implements TicketRepository on pgx. The
// denormalized purchase snapshot is stored as flat columns alongside the
// ticket row.
type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

// NewPostgresTicketRepository constructs a PostgresTicketRepository.
func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{db: db}
}

// Create inserts a new ticket with its purchase-time snapshot.
func (r *PostgresTicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tickets (id, user_id, event_id, quantity,
			holder_name, holder_email, event_name, event_date, event_time,
			ticket_price, location, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		ticket.ID, ticket.UserID, ticket.EventID, ticket.Quantity,
		ticket.Details.Name, ticket.Details.Email, ticket.Details.EventName,
		ticket.Details.EventDate, ticket.Details.EventTime,
		ticket.Details.TicketPrice, ticket.Details.Location, ticket.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID returns a single ticket or model.ErrNotFound.
func (r *PostgresTicketRepository) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, event_id, quantity,
			holder_name, holder_email, event_name, event_date, event_time,
			ticket_price, location, created_at
		 FROM tickets WHERE id = $1`,
		id,
	).Scan(
		&t.ID, &t.UserID, &t.EventID, &t.Quantity,
		&t.Details.Name, &t.Details.Email, &t.Details.EventName,
		&t.Details.EventDate, &t.Details.EventTime,
		&t.Details.TicketPrice, &t.Details.Location, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// ListByUser returns all of a user's tickets in creation order.
func (r *PostgresTicketRepository) ListByUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, event_id, quantity,
			holder_name, holder_email, event_name, event_date, event_time,
			ticket_price, location, created_at
		 FROM tickets
		 WHERE user_id = $1
		 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []model.Ticket
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.EventID, &t.Quantity,
			&t.Details.Name, &t.Details.Email, &t.Details.EventName,
			&t.Details.EventDate, &t.Details.EventTime,
			&t.Details.TicketPrice, &t.Details.Location, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// Delete removes a ticket, returning model.ErrNotFound if it never existed
// or was already cancelled.
func (r *PostgresTicketRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
