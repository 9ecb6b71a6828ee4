package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/westem/event-registration/internal/core/domain"
	"github.com/westem/event-registration/internal/core/ports"
)

type registrationService struct {
	registrations ports.RegistrationRepository
	events        ports.EventRepository
	log           zerolog.Logger
}

// NewRegistrationService returns a RegistrationService implementation.
func NewRegistrationService(registrations ports.RegistrationRepository, events ports.EventRepository, log zerolog.Logger) ports.RegistrationService {
	return &registrationService{registrations: registrations, events: events, log: log}
}

// Join registers the actor for an active event. Joining an event the actor
// is already registered for is a silent no-op; the unique constraint on
// (user_id, event_id) serialises concurrent joins.
func (s *registrationService) Join(ctx context.Context, actor ports.Actor, eventID int64) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.IsActive {
		return domain.ErrEventNotFound
	}

	if err := s.registrations.Join(ctx, actor.UserID, eventID); err != nil {
		return fmt.Errorf("join event %d: %w", eventID, err)
	}

	s.log.Info().Int64("user_id", actor.UserID).Int64("event_id", eventID).Msg("user joined event")
	return nil
}

// Leave removes the actor's registration. Leaving a never-joined event is
// a no-op.
func (s *registrationService) Leave(ctx context.Context, actor ports.Actor, eventID int64) error {
	if err := s.registrations.Leave(ctx, actor.UserID, eventID); err != nil {
		return fmt.Errorf("leave event %d: %w", eventID, err)
	}

	s.log.Info().Int64("user_id", actor.UserID).Int64("event_id", eventID).Msg("user left event")
	return nil
}

// Roster returns the participant list of an event. Only the event's
// creator may view it.
func (s *registrationService) Roster(ctx context.Context, actor ports.Actor, eventID int64) ([]*domain.Participant, error) {
	if !domain.CanManageEvents(actor.Role) {
		return nil, domain.ErrNotAuthorized
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != actor.UserID {
		return nil, domain.ErrNotAuthorized
	}

	return s.registrations.ListParticipants(ctx, eventID)
}
