package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Intervention records a strategy applied by staff during a crisis.
type Intervention struct {
	ID        string
	AppliedAt time.Time
	Strategy  string
	AppliedBy string
	Outcome   *string
}

// NewIntervention creates an intervention; strategy and applier are required.
func NewIntervention(appliedAt time.Time, strategy, appliedBy string) (Intervention, error) {
	if strings.TrimSpace(strategy) == "" {
		return Intervention{}, fmt.Errorf("strategy is required")
	}
	if strings.TrimSpace(appliedBy) == "" {
		return Intervention{}, fmt.Errorf("applier is required")
	}
	return Intervention{
		ID:        uuid.NewString(),
		AppliedAt: appliedAt,
		Strategy:  strategy,
		AppliedBy: appliedBy,
	}, nil
}

// InterventionFromState restores a persisted intervention.
func InterventionFromState(id string, appliedAt time.Time, strategy, appliedBy string, outcome *string) Intervention {
	return Intervention{
		ID:        id,
		AppliedAt: appliedAt,
		Strategy:  strategy,
		AppliedBy: appliedBy,
		Outcome:   outcome,
	}
}

// RecordOutcome stores the observed result of the intervention. An
// outcome is recorded once; later observations need a new intervention.
func (i *Intervention) RecordOutcome(outcome string) error {
	if i.Outcome != nil {
		return fmt.Errorf("intervention outcome already recorded")
	}
	i.Outcome = &outcome
	return nil
}
