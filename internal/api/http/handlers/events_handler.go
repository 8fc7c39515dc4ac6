package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crisis-support-service/internal/api/dto"
	"github.com/spec-kit/crisis-support-service/internal/auth"
	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/service"
)

// EventsHandler exposes calendar endpoints.
type EventsHandler struct {
	calendar *service.CalendarService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(calendarService *service.CalendarService) *EventsHandler {
	return &EventsHandler{calendar: calendarService}
}

// Create handles POST /children/:id/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	risk, err := domain.ParseRiskLevel(req.Risk)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	event, err := h.calendar.CreateEvent(c.Context(), principal.User, c.Params("id"), service.EventCreateInput{
		Title:    req.Title,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Risk:     risk,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": eventResponse(*event)})
}

// List handles GET /children/:id/events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return err
	}

	eventList, err := h.calendar.ListEvents(c.Context(), principal.User, c.Params("id"), from, to)
	if err != nil {
		return err
	}
	items := make([]dto.EventResponse, 0, len(eventList))
	for _, event := range eventList {
		items = append(items, eventResponse(event))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Confirm handles POST /events/:eventId/confirm.
func (h *EventsHandler) Confirm(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	event, err := h.calendar.ConfirmEvent(c.Context(), principal.User, c.Params("eventId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(*event)})
}

// Cancel handles POST /events/:eventId/cancel.
func (h *EventsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	event, err := h.calendar.CancelEvent(c.Context(), principal.User, c.Params("eventId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": eventResponse(*event)})
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid "+key+" timestamp")
	}
	return &parsed, nil
}

func eventResponse(event domain.CalendarEvent) dto.EventResponse {
	return dto.EventResponse{
		ID:       event.ID,
		ChildID:  event.ChildID,
		Title:    event.Title,
		StartsAt: event.StartsAt,
		EndsAt:   event.EndsAt,
		Risk:     string(event.Risk),
		Status:   string(event.Status),
	}
}
