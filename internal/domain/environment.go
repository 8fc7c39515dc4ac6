package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SchoolEnvironment describes a physical space of a school that children
// can preview, optionally with tour media.
type SchoolEnvironment struct {
	ID          string
	SchoolID    string
	Name        string
	Description *string
	MediaURLs   []string
}

// NewSchoolEnvironment creates an environment; school and name are required.
func NewSchoolEnvironment(schoolID, name string, description *string, mediaURLs []string) (SchoolEnvironment, error) {
	if strings.TrimSpace(schoolID) == "" {
		return SchoolEnvironment{}, fmt.Errorf("school id is required")
	}
	if strings.TrimSpace(name) == "" {
		return SchoolEnvironment{}, fmt.Errorf("environment name is required")
	}
	return SchoolEnvironment{
		ID:          uuid.NewString(),
		SchoolID:    schoolID,
		Name:        name,
		Description: description,
		MediaURLs:   append([]string(nil), mediaURLs...),
	}, nil
}

// Update replaces the mutable fields, keeping identity and school.
func (e *SchoolEnvironment) Update(name *string, description *string, mediaURLs []string) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return fmt.Errorf("environment name cannot be empty")
		}
		e.Name = *name
	}
	if description != nil {
		e.Description = description
	}
	if mediaURLs != nil {
		e.MediaURLs = append([]string(nil), mediaURLs...)
	}
	return nil
}
