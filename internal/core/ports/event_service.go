package ports

import (
	"context"

	"github.com/westem/event-registration/internal/core/domain"
)

// CreateEventInput carries all data needed to schedule a new event.
type CreateEventInput struct {
	Title       string `validate:"required"`
	Description string
	Date        string `validate:"required,datetime=2006-01-02"`
	Time        string `validate:"required"`
	Location    string `validate:"required"`
}

// EventSummary is one row of the schedule view: the event plus the
// participant count and the caller's own join state.
type EventSummary struct {
	Event        domain.Event
	Participants int
	Joined       bool
}

// EventService defines use-case operations on the event lifecycle.
// Mutations are gated on the actor's role; the service rejects
// defensively even though the transport layer gates routes as well.
type EventService interface {
	// ListActive expires stale events, then returns the remaining active
	// ones ordered by (date, time) and decorated for the given actor.
	ListActive(ctx context.Context, actor Actor) ([]EventSummary, error)
	// ListMine returns the actor's own active events (management view).
	ListMine(ctx context.Context, actor Actor) ([]*domain.Event, error)
	Create(ctx context.Context, actor Actor, input CreateEventInput) (*domain.Event, error)
	// Delete hard-deletes the event and its registrations. Only the
	// event's creator may delete it.
	Delete(ctx context.Context, actor Actor, eventID int64) error
}
