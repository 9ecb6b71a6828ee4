package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/westem/event-registration/internal/core/domain"
)

// EventRepository implements ports.EventRepository on PostgreSQL.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// ExpireStale deactivates every event whose day is past, or whose day is
// today and whose start time plus the one hour grace has passed. The
// UPDATE is idempotent: already-inactive rows match the predicate but the
// flip is a no-op.
func (r *EventRepository) ExpireStale(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		UPDATE events
		SET is_active = FALSE
		WHERE event_date < CURRENT_DATE
		   OR (event_date = CURRENT_DATE
		       AND event_time + INTERVAL '1 hour' < CURRENT_TIME)
	`)
	if err != nil {
		return fmt.Errorf("expire stale events: %w", err)
	}
	return nil
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, description, event_date, event_time, location, created_by, is_active)
		VALUES ($1, $2, $3, $4::time, $5, $6, $7)
		RETURNING id
	`, e.Title, e.Description, e.EventDate, e.EventTime, e.Location, e.CreatedBy, e.IsActive).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Event
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, description, event_date, event_time::text, location, created_by, is_active
		FROM events
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Title, &e.Description, &e.EventDate, &e.EventTime, &e.Location, &e.CreatedBy, &e.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &e, nil
}

// ListActive returns active events ordered by schedule, soonest first.
func (r *EventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, event_date, event_time::text, location, created_by, is_active
		FROM events
		WHERE is_active = TRUE
		ORDER BY event_date, event_time
	`)
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListByCreator returns the creator's active events, date-ordered.
func (r *EventRepository) ListByCreator(ctx context.Context, userID int64) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, event_date, event_time::text, location, created_by, is_active
		FROM events
		WHERE created_by = $1 AND is_active = TRUE
		ORDER BY event_date, event_time
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list events by creator: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Delete removes the event and its registrations in a single transaction
// so no orphaned registration rows survive any exit path.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete event: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM registrations WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete event registrations: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("delete event: commit: %w", err)
	}
	return nil
}

func scanEvents(rows pgx.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.EventDate, &e.EventTime,
			&e.Location, &e.CreatedBy, &e.IsActive); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
