package domain

import "fmt"

// ProfileType enumerates the roles a user account can hold.
type ProfileType string

const (
	ProfileAdmin       ProfileType = "ADMIN"
	ProfileSchoolStaff ProfileType = "EQUIPE_ESCOLAR"
	ProfileGuardian    ProfileType = "RESPONSAVEL"
	ProfileChild       ProfileType = "CRIANCA"
)

// ParseProfileType matches a profile type case-insensitively.
func ParseProfileType(value string) (ProfileType, error) {
	switch ProfileType(normalizeEnum(value)) {
	case ProfileAdmin:
		return ProfileAdmin, nil
	case ProfileSchoolStaff:
		return ProfileSchoolStaff, nil
	case ProfileGuardian:
		return ProfileGuardian, nil
	case ProfileChild:
		return ProfileChild, nil
	}
	return "", fmt.Errorf("invalid profile type: %s", value)
}

// IsAdmin reports whether the profile grants full access.
func (p ProfileType) IsAdmin() bool {
	return p == ProfileAdmin
}

// FontSize enumerates accessibility font presets.
type FontSize string

const (
	FontSizeSmall  FontSize = "PEQUENO"
	FontSizeMedium FontSize = "MEDIO"
	FontSizeLarge  FontSize = "GRANDE"
)

// ParseFontSize matches a font size case-insensitively.
func ParseFontSize(value string) (FontSize, error) {
	switch FontSize(normalizeEnum(value)) {
	case FontSizeSmall:
		return FontSizeSmall, nil
	case FontSizeMedium:
		return FontSizeMedium, nil
	case FontSizeLarge:
		return FontSizeLarge, nil
	}
	return "", fmt.Errorf("invalid font size: %s", value)
}
