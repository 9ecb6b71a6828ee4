package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/westem/event-registration/internal/api/metrics"
	"github.com/westem/event-registration/internal/core/domain"
	"github.com/westem/event-registration/internal/core/ports"
)

// RegistrationHandler handles joining and leaving events and the roster view.
type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// Join handles POST /v1/events/:id/join. Joining an event the caller is
// already registered for succeeds without creating a second row.
//
// @Summary      Join an event
// @Tags         registrations
// @Security     BearerAuth
// @Param        id   path      int  true  "Event id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/events/{id}/join [post]
func (h *RegistrationHandler) Join(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	eventID, err := eventIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Join(c.Request().Context(), actor, eventID); err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("join").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Leave handles DELETE /v1/events/:id/join. Leaving an event the caller
// never joined is a no-op.
//
// @Summary      Leave an event
// @Tags         registrations
// @Security     BearerAuth
// @Param        id   path      int  true  "Event id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /v1/events/{id}/join [delete]
func (h *RegistrationHandler) Leave(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	eventID, err := eventIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Leave(c.Request().Context(), actor, eventID); err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("leave").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Participants handles GET /v1/events/:id/participants — the creator's
// roster view.
//
// @Summary      List an event's participants
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Event id"
// @Success      200  {array}   domain.Participant
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/events/{id}/participants [get]
func (h *RegistrationHandler) Participants(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	eventID, err := eventIDParam(c)
	if err != nil {
		return err
	}

	participants, err := h.service.Roster(c.Request().Context(), actor, eventID)
	if err != nil {
		return err
	}
	if participants == nil {
		participants = []*domain.Participant{}
	}
	return c.JSON(http.StatusOK, participants)
}
