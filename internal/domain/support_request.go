package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SupportRequest asks adults for help during an open crisis. It embeds a
// copy of the triggering crisis taken at creation time; that copy is
// independent of the aggregate's own crisis list.
type SupportRequest struct {
	ID          string
	RequestedAt time.Time
	Status      RequestStatus
	Crisis      CrisisRecord
}

// NewSupportRequest creates a pending support request whose embedded
// crisis mirrors the given intensity and description.
func NewSupportRequest(requestedAt time.Time, intensity CrisisIntensity, description *string) (SupportRequest, error) {
	if requestedAt.After(time.Now()) {
		return SupportRequest{}, fmt.Errorf("request time cannot be in the future")
	}
	crisis, err := NewCrisisRecord(requestedAt, intensity, description, nil)
	if err != nil {
		return SupportRequest{}, err
	}
	return SupportRequest{
		ID:          uuid.NewString(),
		RequestedAt: requestedAt,
		Status:      RequestStatusPending,
		Crisis:      crisis,
	}, nil
}

// SupportRequestFromState restores a persisted support request.
func SupportRequestFromState(id string, requestedAt time.Time, status RequestStatus, crisis CrisisRecord) SupportRequest {
	return SupportRequest{
		ID:          id,
		RequestedAt: requestedAt,
		Status:      status,
		Crisis:      crisis,
	}
}

// UpdateStatus advances the request along the pending → in service →
// resolved lifecycle, rejecting any other move.
func (r *SupportRequest) UpdateStatus(next RequestStatus) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, r.Status, next)
	}
	r.Status = next
	return nil
}
