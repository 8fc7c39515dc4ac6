package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/events"
	"github.com/spec-kit/crisis-support-service/internal/repository"
	apperrors "github.com/spec-kit/crisis-support-service/pkg/util"
)

// Support request kinds carried on notifications. SOS is the panic
// button with no prior crisis; CRISE piggybacks on the open one.
const (
	SupportKindSOS    = "SOS"
	SupportKindCrisis = "CRISE"
)

// DefaultSOSDescription annotates crises synthesized by the panic button.
const DefaultSOSDescription = "Botão de ajuda acionado"

// Notifier delivers alerts to whoever watches over a child. Delivery is
// best-effort: callers log failures and never roll back a saved change.
type Notifier interface {
	NotifySupportRequested(ctx context.Context, childID, requestID, kind string, at time.Time) error
	NotifyRoutineChanged(ctx context.Context, childID, eventID string, risk domain.RiskLevel, at time.Time) error
}

// CrisisService coordinates the crisis and support workflows around a
// child aggregate: load, mutate, save, then emit events.
type CrisisService struct {
	children   repository.ChildRepository
	dispatcher events.Dispatcher
	notifier   Notifier
	logger     *zap.Logger
}

// CrisisDependencies bundles collaborators for the crisis service.
type CrisisDependencies struct {
	ChildRepo  repository.ChildRepository
	Dispatcher events.Dispatcher
	Notifier   Notifier
	Logger     *zap.Logger
}

// NewCrisisService constructs the service.
func NewCrisisService(deps CrisisDependencies) *CrisisService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CrisisService{
		children:   deps.ChildRepo,
		dispatcher: deps.Dispatcher,
		notifier:   deps.Notifier,
		logger:     logger,
	}
}

// CrisisInput describes a crisis registration payload.
type CrisisInput struct {
	OccurredAt  time.Time
	Intensity   domain.CrisisIntensity
	Description *string
	Trigger     *string
}

// InterventionInput describes an intervention registration payload.
type InterventionInput struct {
	AppliedAt time.Time
	Strategy  string
	AppliedBy string
	Outcome   *string
}

// ChildHistory is the read model for a child's full support history.
type ChildHistory struct {
	Child           domain.Child
	Crises          []domain.CrisisRecord
	SupportRequests []domain.SupportRequest
	Interventions   []domain.Intervention
}

// RegisterCrisis opens a new crisis episode for a child. Fails while a
// previous crisis is still unresolved.
func (s *CrisisService) RegisterCrisis(ctx context.Context, actor *domain.User, childID string, input CrisisInput) (*domain.CrisisRecord, error) {
	agg, err := s.loadForActor(ctx, actor, childID)
	if err != nil {
		return nil, err
	}
	if err := requireStaffOrAdmin(actor); err != nil {
		return nil, err
	}

	crisis, err := domain.NewCrisisRecord(input.OccurredAt, input.Intensity, input.Description, input.Trigger)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	updated, err := agg.AddCrisis(crisis)
	if err != nil {
		return nil, err
	}
	if err := s.children.Save(ctx, updated); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventCrisisRecorded,
		ChildID: childID,
		Actor:   actorFrom(actor),
		Payload: events.CrisisRecordedPayload{
			CrisisID:  crisis.ID,
			Intensity: crisis.Intensity,
			Trigger:   crisis.Trigger,
		},
	})
	return &crisis, nil
}

// RegisterIntervention logs a calming strategy applied to a child.
func (s *CrisisService) RegisterIntervention(ctx context.Context, actor *domain.User, childID string, input InterventionInput) (*domain.Intervention, error) {
	agg, err := s.loadForActor(ctx, actor, childID)
	if err != nil {
		return nil, err
	}
	if err := requireStaffOrAdmin(actor); err != nil {
		return nil, err
	}

	intervention, err := domain.NewIntervention(input.AppliedAt, input.Strategy, input.AppliedBy)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if input.Outcome != nil {
		if err := intervention.RecordOutcome(*input.Outcome); err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
	}
	updated, err := agg.AddIntervention(intervention)
	if err != nil {
		return nil, err
	}
	if err := s.children.Save(ctx, updated); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventInterventionRecorded,
		ChildID: childID,
		Actor:   actorFrom(actor),
		Payload: events.InterventionRecordedPayload{
			InterventionID: intervention.ID,
			Strategy:       intervention.Strategy,
		},
	})
	return &intervention, nil
}

// MarkCrisisEfficacy resolves a crisis with a worked/did-not-work
// judgment, freeing the child for a new episode.
func (s *CrisisService) MarkCrisisEfficacy(ctx context.Context, actor *domain.User, childID, crisisID string, effective bool) error {
	agg, err := s.loadForActor(ctx, actor, childID)
	if err != nil {
		return err
	}
	if err := requireStaffOrAdmin(actor); err != nil {
		return err
	}

	updated, err := agg.MarkCrisisEfficacy(crisisID, effective)
	if err != nil {
		return err
	}
	if err := s.children.Save(ctx, updated); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventCrisisResolved,
		ChildID: childID,
		Actor:   actorFrom(actor),
		Payload: events.CrisisResolvedPayload{
			CrisisID: crisisID,
			Efficacy: effective,
		},
	})
	return nil
}

// RequestSupport is the panic button. When no crisis is open it
// synthesizes a high-intensity one so the request always lands; the
// alert to caretakers is best-effort and never undoes the save.
func (s *CrisisService) RequestSupport(ctx context.Context, actor *domain.User, childID string) (*domain.SupportRequest, error) {
	agg, err := s.loadForActor(ctx, actor, childID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	kind := SupportKindCrisis
	if _, open := agg.OpenCrisis(); !open {
		kind = SupportKindSOS
		description := DefaultSOSDescription
		crisis, err := domain.NewCrisisRecord(now, domain.IntensityHigh, &description, nil)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		if agg, err = agg.AddCrisis(crisis); err != nil {
			return nil, err
		}
	}

	open, _ := agg.OpenCrisis()
	description := open.Description
	if description == nil {
		fallback := DefaultSOSDescription
		description = &fallback
	}
	request, err := domain.NewSupportRequest(now, open.Intensity, description)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	updated, err := agg.AddSupportRequest(request)
	if err != nil {
		return nil, err
	}
	if err := s.children.Save(ctx, updated); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifySupportRequested(ctx, childID, request.ID, kind, now); err != nil {
			s.logger.Warn("support notification failed",
				zap.String("child_id", childID),
				zap.String("request_id", request.ID),
				zap.Error(err))
		}
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventSupportRequested,
		ChildID: childID,
		Actor:   actorFrom(actor),
		Payload: events.SupportRequestedPayload{
			RequestID: request.ID,
			Kind:      kind,
			Intensity: request.Crisis.Intensity,
		},
	})
	return &request, nil
}

// UpdateSupportRequestStatus advances a support request through its
// attendance lifecycle.
func (s *CrisisService) UpdateSupportRequestStatus(ctx context.Context, actor *domain.User, childID, requestID string, next domain.RequestStatus) error {
	agg, err := s.loadForActor(ctx, actor, childID)
	if err != nil {
		return err
	}
	if err := requireStaffOrAdmin(actor); err != nil {
		return err
	}

	var old domain.RequestStatus
	for _, request := range agg.SupportRequests() {
		if request.ID == requestID {
			old = request.Status
		}
	}
	updated, err := agg.UpdateSupportRequestStatus(requestID, next)
	if err != nil {
		return err
	}
	if err := s.children.Save(ctx, updated); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventSupportStatusChanged,
		ChildID: childID,
		Actor:   actorFrom(actor),
		Payload: events.SupportStatusChangedPayload{
			RequestID: requestID,
			OldStatus: old,
			NewStatus: next,
		},
	})
	return nil
}

// GetHistory returns the full support history of a child.
func (s *CrisisService) GetHistory(ctx context.Context, actor *domain.User, childID string) (*ChildHistory, error) {
	agg, err := s.loadForActor(ctx, actor, childID)
	if err != nil {
		return nil, err
	}
	return &ChildHistory{
		Child:           agg.Child(),
		Crises:          agg.Crises(),
		SupportRequests: agg.SupportRequests(),
		Interventions:   agg.Interventions(),
	}, nil
}

func (s *CrisisService) loadForActor(ctx context.Context, actor *domain.User, childID string) (*domain.ChildAggregate, error) {
	agg, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if !canAccessChild(actor, agg.Child()) {
		return nil, apperrors.NewForbidden("no access to this child")
	}
	return agg, nil
}

// canAccessChild: admins see everything, guardians their own children,
// school profiles the children of their school.
func canAccessChild(actor *domain.User, child domain.Child) bool {
	if actor == nil {
		return false
	}
	switch actor.Profile {
	case domain.ProfileAdmin:
		return true
	case domain.ProfileGuardian:
		return child.HasGuardian(actor.ID)
	case domain.ProfileSchoolStaff, domain.ProfileChild:
		return actor.SchoolID != nil && child.SchoolID != nil && *actor.SchoolID == *child.SchoolID
	}
	return false
}

func requireStaffOrAdmin(actor *domain.User) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if actor.Profile != domain.ProfileAdmin && actor.Profile != domain.ProfileSchoolStaff {
		return apperrors.NewForbidden("school staff profile required")
	}
	return nil
}

func (s *CrisisService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFrom(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: user.ID, Profile: user.Profile}
}
