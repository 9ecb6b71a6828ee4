package ports

import (
	"context"

	"github.com/westem/event-registration/internal/core/domain"
)

// RegistrationService defines use-case operations on event membership.
type RegistrationService interface {
	Join(ctx context.Context, actor Actor, eventID int64) error
	Leave(ctx context.Context, actor Actor, eventID int64) error
	// Roster returns the participant list of an event. Restricted to the
	// event's creator.
	Roster(ctx context.Context, actor Actor, eventID int64) ([]*domain.Participant, error)
}
