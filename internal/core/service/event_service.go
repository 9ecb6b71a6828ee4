package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/westem/event-registration/internal/core/domain"
	"github.com/westem/event-registration/internal/core/ports"
)

type eventService struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	log           zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(events ports.EventRepository, registrations ports.RegistrationRepository, log zerolog.Logger) ports.EventService {
	return &eventService{events: events, registrations: registrations, log: log}
}

// ListActive runs the expiry sweep, then returns the remaining active
// events ordered by (date, time), each decorated with its participant
// count and the actor's own join state.
func (s *eventService) ListActive(ctx context.Context, actor ports.Actor) ([]ports.EventSummary, error) {
	if err := s.events.ExpireStale(ctx); err != nil {
		return nil, fmt.Errorf("list active: expire stale: %w", err)
	}

	events, err := s.events.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active: %w", err)
	}

	summaries := make([]ports.EventSummary, 0, len(events))
	for _, e := range events {
		count, err := s.registrations.Count(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("list active: count %d: %w", e.ID, err)
		}
		joined, err := s.registrations.IsJoined(ctx, actor.UserID, e.ID)
		if err != nil {
			return nil, fmt.Errorf("list active: join state %d: %w", e.ID, err)
		}
		summaries = append(summaries, ports.EventSummary{
			Event:        *e,
			Participants: count,
			Joined:       joined,
		})
	}
	return summaries, nil
}

// ListMine returns the actor's own active events for the management view.
func (s *eventService) ListMine(ctx context.Context, actor ports.Actor) ([]*domain.Event, error) {
	if !domain.CanManageEvents(actor.Role) {
		return nil, domain.ErrNotAuthorized
	}
	if err := s.events.ExpireStale(ctx); err != nil {
		return nil, fmt.Errorf("list mine: expire stale: %w", err)
	}
	return s.events.ListByCreator(ctx, actor.UserID)
}

// Create schedules a new event owned by the actor. Restricted to teachers
// and admins; the route gate checks this too, the service rejects anyway.
func (s *eventService) Create(ctx context.Context, actor ports.Actor, in ports.CreateEventInput) (*domain.Event, error) {
	if !domain.CanManageEvents(actor.Role) {
		return nil, domain.ErrNotAuthorized
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, &domain.ValidationError{Violations: []string{"date must be in YYYY-MM-DD form"}}
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		if _, err := time.Parse("15:04:05", in.Time); err != nil {
			return nil, &domain.ValidationError{Violations: []string{"time must be in HH:MM form"}}
		}
	}

	event := &domain.Event{
		Title:       in.Title,
		Description: in.Description,
		EventDate:   date,
		EventTime:   in.Time,
		Location:    in.Location,
		CreatedBy:   actor.UserID,
		IsActive:    true,
	}

	id, err := s.events.Create(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		return nil, err
	}
	event.ID = id

	s.log.Info().Int64("event_id", id).Int64("created_by", actor.UserID).Str("date", in.Date).Msg("event created")
	return event, nil
}

// Delete hard-deletes an event together with its registrations. Only the
// event's creator may delete it.
func (s *eventService) Delete(ctx context.Context, actor ports.Actor, eventID int64) error {
	if !domain.CanManageEvents(actor.Role) {
		return domain.ErrNotAuthorized
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatedBy != actor.UserID {
		return domain.ErrNotAuthorized
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event %d: %w", eventID, err)
	}

	s.log.Info().Int64("event_id", eventID).Int64("deleted_by", actor.UserID).Msg("event deleted")
	return nil
}
