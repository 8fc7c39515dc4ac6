package dto

import "time"

// CreateChildRequest payload.
type CreateChildRequest struct {
	BirthDate    time.Time `json:"birth_date"`
	Severity     string    `json:"severity"`
	SupportLevel string    `json:"support_level"`
	SchoolID     *string   `json:"school_id"`
	GuardianIDs  []string  `json:"guardian_ids"`
}

// UpdateChildRequest carries optional profile changes.
type UpdateChildRequest struct {
	Severity     *string  `json:"severity"`
	SupportLevel *string  `json:"support_level"`
	SchoolID     *string  `json:"school_id"`
	GuardianIDs  []string `json:"guardian_ids"`
}

// ChildResponse is the public view of a child profile.
type ChildResponse struct {
	ID           string   `json:"id"`
	BirthDate    string   `json:"birth_date"`
	Age          int      `json:"age"`
	Severity     string   `json:"severity"`
	SupportLevel string   `json:"support_level"`
	SchoolID     *string  `json:"school_id"`
	GuardianIDs  []string `json:"guardian_ids"`
}
