package ports

import (
	"context"

	"github.com/westem/event-registration/internal/core/domain"
)

// RegistrationRepository persists (user, event) membership pairs.
// The store's unique constraint on the pair is the serialization point
// for concurrent joins; no application-level locking.
type RegistrationRepository interface {
	// Join inserts the pair if absent. Re-joining is a silent no-op.
	Join(ctx context.Context, userID, eventID int64) error
	// Leave deletes the pair if present; no-op otherwise.
	Leave(ctx context.Context, userID, eventID int64) error
	IsJoined(ctx context.Context, userID, eventID int64) (bool, error)
	Count(ctx context.Context, eventID int64) (int, error)
	ListParticipants(ctx context.Context, eventID int64) ([]*domain.Participant, error)
}
