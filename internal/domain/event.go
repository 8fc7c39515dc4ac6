package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is a scheduled routine entry for a child, graded by how
// disruptive the change is expected to be.
type CalendarEvent struct {
	ID       string
	ChildID  string
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
	Risk     RiskLevel
	Status   EventStatus
}

// NewCalendarEvent creates a pending event; start must precede end.
func NewCalendarEvent(childID, title string, startsAt, endsAt time.Time, risk RiskLevel) (CalendarEvent, error) {
	if strings.TrimSpace(title) == "" {
		return CalendarEvent{}, fmt.Errorf("title is required")
	}
	if !startsAt.Before(endsAt) {
		return CalendarEvent{}, fmt.Errorf("event start must be before event end")
	}
	return CalendarEvent{
		ID:       uuid.NewString(),
		ChildID:  childID,
		Title:    title,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Risk:     risk,
		Status:   EventStatusPending,
	}, nil
}

// Confirm marks a pending event as confirmed.
func (e *CalendarEvent) Confirm() error {
	if e.Status != EventStatusPending {
		return fmt.Errorf("only pending events can be confirmed")
	}
	e.Status = EventStatusConfirmed
	return nil
}

// Cancel cancels an event that has not already been cancelled.
func (e *CalendarEvent) Cancel() error {
	if e.Status == EventStatusCancelled {
		return fmt.Errorf("event already cancelled")
	}
	e.Status = EventStatusCancelled
	return nil
}
