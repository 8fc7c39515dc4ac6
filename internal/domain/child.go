package domain

import "github.com/google/uuid"

// Child is the subject whose crises and support history are tracked.
// Mutate only through the methods; the aggregate copies the struct on
// every rebuild.
type Child struct {
	ID           string
	BirthDate    BirthDate
	Severity     Severity
	SupportLevel SupportLevel
	SchoolID     *string
	GuardianIDs  []string
}

// NewChild creates a child profile.
func NewChild(birthDate BirthDate, severity Severity, supportLevel SupportLevel, schoolID *string, guardianIDs []string) Child {
	return Child{
		ID:           uuid.NewString(),
		BirthDate:    birthDate,
		Severity:     severity,
		SupportLevel: supportLevel,
		SchoolID:     schoolID,
		GuardianIDs:  append([]string(nil), guardianIDs...),
	}
}

// ChildFromState restores a persisted child profile.
func ChildFromState(id string, birthDate BirthDate, severity Severity, supportLevel SupportLevel, schoolID *string, guardianIDs []string) Child {
	return Child{
		ID:           id,
		BirthDate:    birthDate,
		Severity:     severity,
		SupportLevel: supportLevel,
		SchoolID:     schoolID,
		GuardianIDs:  append([]string(nil), guardianIDs...),
	}
}

// AddGuardian registers a guardian once.
func (c *Child) AddGuardian(guardianID string) {
	for _, id := range c.GuardianIDs {
		if id == guardianID {
			return
		}
	}
	c.GuardianIDs = append(c.GuardianIDs, guardianID)
}

// HasGuardian reports whether the given user is a registered guardian.
func (c *Child) HasGuardian(guardianID string) bool {
	for _, id := range c.GuardianIDs {
		if id == guardianID {
			return true
		}
	}
	return false
}

// SetSchool updates (or clears) the school affiliation.
func (c *Child) SetSchool(schoolID *string) {
	c.SchoolID = schoolID
}

// SetSeverity updates the severity classification.
func (c *Child) SetSeverity(severity Severity) {
	c.Severity = severity
}

// SetSupportLevel updates the support tier.
func (c *Child) SetSupportLevel(level SupportLevel) {
	c.SupportLevel = level
}

// clone returns a deep copy so aggregate rebuilds never share slices.
func (c Child) clone() Child {
	copied := c
	copied.GuardianIDs = append([]string(nil), c.GuardianIDs...)
	return copied
}
