package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/events"
	"github.com/spec-kit/crisis-support-service/internal/repository"
	apperrors "github.com/spec-kit/crisis-support-service/pkg/util"
)

// CalendarService manages routine events for children. Risky changes
// (yellow or red) alert the people caring for the child.
type CalendarService struct {
	calendar   repository.EventRepository
	children   repository.ChildRepository
	dispatcher events.Dispatcher
	notifier   Notifier
	logger     *zap.Logger
}

// CalendarDependencies bundles collaborators for the calendar service.
type CalendarDependencies struct {
	EventRepo  repository.EventRepository
	ChildRepo  repository.ChildRepository
	Dispatcher events.Dispatcher
	Notifier   Notifier
	Logger     *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(deps CalendarDependencies) *CalendarService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		calendar:   deps.EventRepo,
		children:   deps.ChildRepo,
		dispatcher: deps.Dispatcher,
		notifier:   deps.Notifier,
		logger:     logger,
	}
}

// EventCreateInput describes an event creation payload.
type EventCreateInput struct {
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
	Risk     domain.RiskLevel
}

// CreateEvent schedules a pending routine event for a child.
func (s *CalendarService) CreateEvent(ctx context.Context, actor *domain.User, childID string, input EventCreateInput) (*domain.CalendarEvent, error) {
	if err := s.authorize(ctx, actor, childID); err != nil {
		return nil, err
	}
	event, err := domain.NewCalendarEvent(childID, input.Title, input.StartsAt, input.EndsAt, input.Risk)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if err := s.calendar.Create(ctx, &event); err != nil {
		return nil, err
	}
	s.notifyIfRisky(ctx, event)
	return &event, nil
}

// ConfirmEvent confirms a pending event.
func (s *CalendarService) ConfirmEvent(ctx context.Context, actor *domain.User, eventID string) (*domain.CalendarEvent, error) {
	return s.transition(ctx, actor, eventID, func(event *domain.CalendarEvent) error {
		return event.Confirm()
	})
}

// CancelEvent cancels an event; cancellations of risky events also alert.
func (s *CalendarService) CancelEvent(ctx context.Context, actor *domain.User, eventID string) (*domain.CalendarEvent, error) {
	return s.transition(ctx, actor, eventID, func(event *domain.CalendarEvent) error {
		return event.Cancel()
	})
}

// ListEvents returns a child's events within an optional window.
func (s *CalendarService) ListEvents(ctx context.Context, actor *domain.User, childID string, from, to *time.Time) ([]domain.CalendarEvent, error) {
	if err := s.authorize(ctx, actor, childID); err != nil {
		return nil, err
	}
	return s.calendar.ListByChild(ctx, childID, from, to)
}

func (s *CalendarService) transition(ctx context.Context, actor *domain.User, eventID string, apply func(*domain.CalendarEvent) error) (*domain.CalendarEvent, error) {
	event, err := s.calendar.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, event.ChildID); err != nil {
		return nil, err
	}
	if err := apply(event); err != nil {
		return nil, apperrors.NewConflict(err.Error(), nil)
	}
	if err := s.calendar.Update(ctx, event); err != nil {
		return nil, err
	}
	s.notifyIfRisky(ctx, *event)
	return event, nil
}

func (s *CalendarService) authorize(ctx context.Context, actor *domain.User, childID string) error {
	agg, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return err
	}
	if !canAccessChild(actor, agg.Child()) {
		return apperrors.NewForbidden("no access to this child")
	}
	return nil
}

// notifyIfRisky alerts for yellow and red events; green changes are not
// worth interrupting anyone over. Delivery is best-effort.
func (s *CalendarService) notifyIfRisky(ctx context.Context, event domain.CalendarEvent) {
	if event.Risk == domain.RiskGreen {
		return
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyRoutineChanged(ctx, event.ChildID, event.ID, event.Risk, event.StartsAt); err != nil {
			s.logger.Warn("routine notification failed",
				zap.String("child_id", event.ChildID),
				zap.String("event_id", event.ID),
				zap.Error(err))
		}
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventRoutineChanged,
			ChildID:   event.ChildID,
			Timestamp: time.Now(),
			Payload: events.RoutineChangedPayload{
				EventID: event.ID,
				Title:   event.Title,
				Risk:    event.Risk,
				Status:  event.Status,
			},
		})
	}
}
