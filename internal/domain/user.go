package domain

import "time"

// User is an account able to authenticate against the service: school
// staff, guardians, admins, or the child's own panic-button profile.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Profile      ProfileType
	SchoolID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSchoolStaff reports whether the user belongs to a school team.
func (u *User) IsSchoolStaff() bool {
	return u.Profile == ProfileSchoolStaff
}
