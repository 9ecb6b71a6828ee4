package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/westem/event-registration/internal/api/metrics"
	"github.com/westem/event-registration/internal/core/domain"
	"github.com/westem/event-registration/internal/core/ports"
)

const dateFormat = "2006-01-02"

// EventHandler handles HTTP requests for the event lifecycle.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

type createEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required"`
	Location    string `json:"location" validate:"required"`
}

type eventResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	CreatedBy   int64  `json:"created_by"`
}

type eventSummaryResponse struct {
	eventResponse
	Participants int  `json:"participants"`
	Joined       bool `json:"joined"`
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.EventDate.Format(dateFormat),
		Time:        e.EventTime,
		Location:    e.Location,
		CreatedBy:   e.CreatedBy,
	}
}

// List handles GET /v1/events — the schedule view. Stale events are
// expired before listing, so the response never contains a past event.
//
// @Summary      List active events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   eventSummaryResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	summaries, err := h.service.ListActive(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]eventSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, eventSummaryResponse{
			eventResponse: toEventResponse(s.Event),
			Participants:  s.Participants,
			Joined:        s.Joined,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Mine handles GET /v1/events/mine — the creator's management view.
//
// @Summary      List the caller's own active events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   eventResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/events/mine [get]
func (h *EventHandler) Mine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	events, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(*e))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	event, err := h.service.Create(c.Request().Context(), actor, ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}

	metrics.EventsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toEventResponse(*event))
}

// Delete handles DELETE /v1/events/:id — creator-only hard delete, with
// the event's registrations removed in the same transaction.
//
// @Summary      Delete an event
// @Tags         events
// @Security     BearerAuth
// @Param        id   path      int  true  "Event id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	eventID, err := eventIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, eventID); err != nil {
		return err
	}

	metrics.EventsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

func eventIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	return id, nil
}
