package domain

import "fmt"

// RequestStatus enumerates lifecycle states for support requests.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDENTE"
	RequestStatusInService RequestStatus = "EM_ATENDIMENTO"
	RequestStatusResolved  RequestStatus = "RESOLVIDO"
)

// The lifecycle is strictly one-way; RESOLVIDO is terminal.
var allowedRequestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:   {RequestStatusInService},
	RequestStatusInService: {RequestStatusResolved},
	RequestStatusResolved:  {},
}

// CanTransitionTo reports whether the status may move to next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, candidate := range allowedRequestTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseRequestStatus matches a support request status case-insensitively.
func ParseRequestStatus(value string) (RequestStatus, error) {
	switch RequestStatus(normalizeEnum(value)) {
	case RequestStatusPending:
		return RequestStatusPending, nil
	case RequestStatusInService:
		return RequestStatusInService, nil
	case RequestStatusResolved:
		return RequestStatusResolved, nil
	}
	return "", fmt.Errorf("invalid request status: %s", value)
}

// EventStatus enumerates lifecycle states for calendar events.
type EventStatus string

const (
	EventStatusPending   EventStatus = "PENDENTE"
	EventStatusConfirmed EventStatus = "CONFIRMADO"
	EventStatusCancelled EventStatus = "CANCELADO"
)

// ParseEventStatus matches a calendar event status case-insensitively.
func ParseEventStatus(value string) (EventStatus, error) {
	switch EventStatus(normalizeEnum(value)) {
	case EventStatusPending:
		return EventStatusPending, nil
	case EventStatusConfirmed:
		return EventStatusConfirmed, nil
	case EventStatusCancelled:
		return EventStatusCancelled, nil
	}
	return "", fmt.Errorf("invalid event status: %s", value)
}
