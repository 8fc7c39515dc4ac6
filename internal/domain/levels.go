package domain

import (
	"fmt"
	"strings"
)

// normalizeEnum uppercases and trims raw enum input before matching.
func normalizeEnum(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// Severity classifies how pronounced a child's condition is.
type Severity string

const (
	SeverityMild     Severity = "LEVE"
	SeverityModerate Severity = "MODERADO"
	SeveritySevere   Severity = "SEVERO"
)

// ParseSeverity matches a severity value case-insensitively.
func ParseSeverity(value string) (Severity, error) {
	switch Severity(normalizeEnum(value)) {
	case SeverityMild:
		return SeverityMild, nil
	case SeverityModerate:
		return SeverityModerate, nil
	case SeveritySevere:
		return SeveritySevere, nil
	}
	return "", fmt.Errorf("invalid severity: %s", value)
}

// SupportLevel is the tier of day-to-day assistance a child needs.
type SupportLevel string

const (
	SupportLevel1 SupportLevel = "NIVEL_1"
	SupportLevel2 SupportLevel = "NIVEL_2"
	SupportLevel3 SupportLevel = "NIVEL_3"
)

// ParseSupportLevel matches a support level case-insensitively.
func ParseSupportLevel(value string) (SupportLevel, error) {
	switch SupportLevel(normalizeEnum(value)) {
	case SupportLevel1:
		return SupportLevel1, nil
	case SupportLevel2:
		return SupportLevel2, nil
	case SupportLevel3:
		return SupportLevel3, nil
	}
	return "", fmt.Errorf("invalid support level: %s. use NIVEL_1, NIVEL_2 or NIVEL_3", value)
}

// CrisisIntensity grades a crisis episode.
type CrisisIntensity string

const (
	IntensityLow    CrisisIntensity = "BAIXA"
	IntensityMedium CrisisIntensity = "MEDIA"
	IntensityHigh   CrisisIntensity = "ALTA"
)

// ParseCrisisIntensity matches an intensity value case-insensitively.
func ParseCrisisIntensity(value string) (CrisisIntensity, error) {
	switch CrisisIntensity(normalizeEnum(value)) {
	case IntensityLow:
		return IntensityLow, nil
	case IntensityMedium:
		return IntensityMedium, nil
	case IntensityHigh:
		return IntensityHigh, nil
	}
	return "", fmt.Errorf("invalid crisis intensity: %s", value)
}

// RiskLevel flags how disruptive a calendar event is expected to be.
type RiskLevel string

const (
	RiskGreen  RiskLevel = "VERDE"
	RiskYellow RiskLevel = "AMARELO"
	RiskRed    RiskLevel = "VERMELHO"
)

// ParseRiskLevel matches a risk level case-insensitively.
func ParseRiskLevel(value string) (RiskLevel, error) {
	switch RiskLevel(normalizeEnum(value)) {
	case RiskGreen:
		return RiskGreen, nil
	case RiskYellow:
		return RiskYellow, nil
	case RiskRed:
		return RiskRed, nil
	}
	return "", fmt.Errorf("invalid risk level: %s", value)
}
