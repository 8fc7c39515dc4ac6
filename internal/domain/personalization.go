package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SensoryProfile stores per-child interface personalization used to keep
// the frontend predictable and low-stimulus.
type SensoryProfile struct {
	ID           string
	ChildID      string
	Palette      *string
	FontSize     FontSize
	Icons        *string
	Sounds       bool
	Animations   bool
	HighContrast bool
}

// NewSensoryProfile creates the default profile for a child.
func NewSensoryProfile(childID string) (SensoryProfile, error) {
	if strings.TrimSpace(childID) == "" {
		return SensoryProfile{}, fmt.Errorf("child id is required")
	}
	return SensoryProfile{
		ID:       uuid.NewString(),
		ChildID:  childID,
		FontSize: FontSizeMedium,
	}, nil
}
