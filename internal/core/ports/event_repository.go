package ports

import (
	"context"

	"github.com/westem/event-registration/internal/core/domain"
)

// EventRepository defines persistence operations for events.
type EventRepository interface {
	// ExpireStale flips is_active to false for every event whose day is in
	// the past, or whose day is today and start time plus one hour has
	// passed. Idempotent; callers run it before any listing.
	ExpireStale(ctx context.Context) error
	Create(ctx context.Context, e *domain.Event) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Event, error)
	// ListActive returns active events ordered by (event_date, event_time).
	ListActive(ctx context.Context) ([]*domain.Event, error)
	// ListByCreator returns the creator's active events, date-ordered.
	ListByCreator(ctx context.Context, userID int64) ([]*domain.Event, error)
	// Delete removes the event and all its registrations in one
	// transaction, leaving no orphaned rows on any exit path.
	Delete(ctx context.Context, id int64) error
}
