package dto

import "time"

// RegisterCrisisRequest payload.
type RegisterCrisisRequest struct {
	OccurredAt  time.Time `json:"occurred_at"`
	Intensity   string    `json:"intensity"`
	Description *string   `json:"description"`
	Trigger     *string   `json:"trigger"`
}

// RegisterInterventionRequest payload.
type RegisterInterventionRequest struct {
	AppliedAt time.Time `json:"applied_at"`
	Strategy  string    `json:"strategy"`
	AppliedBy string    `json:"applied_by"`
	Outcome   *string   `json:"outcome"`
}

// MarkEfficacyRequest resolves a crisis.
type MarkEfficacyRequest struct {
	Effective bool `json:"effective"`
}

// UpdateSupportStatusRequest advances a support request.
type UpdateSupportStatusRequest struct {
	Status string `json:"status"`
}

// CrisisResponse is the public view of a crisis record.
type CrisisResponse struct {
	ID          string    `json:"id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Intensity   string    `json:"intensity"`
	Description *string   `json:"description"`
	Trigger     *string   `json:"trigger"`
	Efficacy    *bool     `json:"efficacy"`
}

// SupportRequestResponse is the public view of a support request.
type SupportRequestResponse struct {
	ID          string         `json:"id"`
	RequestedAt time.Time      `json:"requested_at"`
	Status      string         `json:"status"`
	Crisis      CrisisResponse `json:"crisis"`
}

// InterventionResponse is the public view of an intervention.
type InterventionResponse struct {
	ID        string    `json:"id"`
	AppliedAt time.Time `json:"applied_at"`
	Strategy  string    `json:"strategy"`
	AppliedBy string    `json:"applied_by"`
	Outcome   *string   `json:"outcome"`
}

// ChildHistoryResponse aggregates a child's full support history.
type ChildHistoryResponse struct {
	Child           ChildResponse            `json:"child"`
	Crises          []CrisisResponse         `json:"crises"`
	SupportRequests []SupportRequestResponse `json:"support_requests"`
	Interventions   []InterventionResponse   `json:"interventions"`
}
