package dto

import "time"

// CreateEventRequest payload.
type CreateEventRequest struct {
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Risk     string    `json:"risk"`
}

// EventResponse is the public view of a calendar event.
type EventResponse struct {
	ID       string    `json:"id"`
	ChildID  string    `json:"child_id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Risk     string    `json:"risk"`
	Status   string    `json:"status"`
}

// CreateEnvironmentRequest payload.
type CreateEnvironmentRequest struct {
	SchoolID    string   `json:"school_id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	MediaURLs   []string `json:"media_urls"`
}

// UpdateEnvironmentRequest carries optional environment changes.
type UpdateEnvironmentRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	MediaURLs   []string `json:"media_urls"`
}

// EnvironmentResponse is the public view of a school environment.
type EnvironmentResponse struct {
	ID          string   `json:"id"`
	SchoolID    string   `json:"school_id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	MediaURLs   []string `json:"media_urls"`
}

// UpdateSensoryProfileRequest carries optional sensory changes.
type UpdateSensoryProfileRequest struct {
	Palette      *string `json:"palette"`
	FontSize     *string `json:"font_size"`
	Icons        *string `json:"icons"`
	Sounds       *bool   `json:"sounds"`
	Animations   *bool   `json:"animations"`
	HighContrast *bool   `json:"high_contrast"`
}

// SensoryProfileResponse is the public view of sensory settings.
type SensoryProfileResponse struct {
	ChildID      string  `json:"child_id"`
	Palette      *string `json:"palette"`
	FontSize     string  `json:"font_size"`
	Icons        *string `json:"icons"`
	Sounds       bool    `json:"sounds"`
	Animations   bool    `json:"animations"`
	HighContrast bool    `json:"high_contrast"`
}
