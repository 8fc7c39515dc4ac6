package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CrisisRecord is one logged crisis episode. OccurredAt, Intensity,
// Description and Trigger are fixed at creation; only the efficacy flag
// changes afterwards. A nil Efficacy means the crisis is still open.
type CrisisRecord struct {
	ID          string
	OccurredAt  time.Time
	Intensity   CrisisIntensity
	Description *string
	Trigger     *string
	Efficacy    *bool
}

// NewCrisisRecord creates an open crisis episode.
func NewCrisisRecord(occurredAt time.Time, intensity CrisisIntensity, description, trigger *string) (CrisisRecord, error) {
	if occurredAt.After(time.Now()) {
		return CrisisRecord{}, fmt.Errorf("crisis time cannot be in the future")
	}
	return CrisisRecord{
		ID:          uuid.NewString(),
		OccurredAt:  occurredAt,
		Intensity:   intensity,
		Description: description,
		Trigger:     trigger,
	}, nil
}

// CrisisRecordFromState restores a persisted crisis without re-running
// creation-time checks.
func CrisisRecordFromState(id string, occurredAt time.Time, intensity CrisisIntensity, description, trigger *string, efficacy *bool) CrisisRecord {
	return CrisisRecord{
		ID:          id,
		OccurredAt:  occurredAt,
		Intensity:   intensity,
		Description: description,
		Trigger:     trigger,
		Efficacy:    efficacy,
	}
}

// Open reports whether the crisis has not been marked resolved yet.
func (c CrisisRecord) Open() bool {
	return c.Efficacy == nil
}
