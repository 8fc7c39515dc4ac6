package events

import (
	"time"

	"github.com/spec-kit/crisis-support-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCrisisRecorded       EventType = "crisis_recorded"
	EventCrisisResolved       EventType = "crisis_resolved"
	EventSupportRequested     EventType = "support_requested"
	EventSupportStatusChanged EventType = "support_status_changed"
	EventInterventionRecorded EventType = "intervention_recorded"
	EventRoutineChanged       EventType = "routine_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID  string             `json:"user_id"`
	Profile domain.ProfileType `json:"profile"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ChildID   string      `json:"child_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CrisisRecordedPayload payload.
type CrisisRecordedPayload struct {
	CrisisID  string                 `json:"crisis_id"`
	Intensity domain.CrisisIntensity `json:"intensity"`
	Trigger   *string                `json:"trigger,omitempty"`
}

// CrisisResolvedPayload payload.
type CrisisResolvedPayload struct {
	CrisisID string `json:"crisis_id"`
	Efficacy bool   `json:"efficacy"`
}

// SupportRequestedPayload payload.
type SupportRequestedPayload struct {
	RequestID string                 `json:"request_id"`
	Kind      string                 `json:"kind"`
	Intensity domain.CrisisIntensity `json:"intensity"`
}

// SupportStatusChangedPayload payload.
type SupportStatusChangedPayload struct {
	RequestID string               `json:"request_id"`
	OldStatus domain.RequestStatus `json:"old_status"`
	NewStatus domain.RequestStatus `json:"new_status"`
}

// InterventionRecordedPayload payload.
type InterventionRecordedPayload struct {
	InterventionID string `json:"intervention_id"`
	Strategy       string `json:"strategy"`
}

// RoutineChangedPayload payload.
type RoutineChangedPayload struct {
	EventID string             `json:"event_id"`
	Title   string             `json:"title"`
	Risk    domain.RiskLevel   `json:"risk"`
	Status  domain.EventStatus `json:"status"`
}
