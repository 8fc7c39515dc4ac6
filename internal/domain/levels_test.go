package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	severity, err := ParseSeverity("moderado")
	require.NoError(t, err)
	assert.Equal(t, SeverityModerate, severity)

	severity, err = ParseSeverity("  SEVERO ")
	require.NoError(t, err)
	assert.Equal(t, SeveritySevere, severity)

	_, err = ParseSeverity("extremo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extremo")
}

func TestParseSupportLevel(t *testing.T) {
	level, err := ParseSupportLevel("nivel_2")
	require.NoError(t, err)
	assert.Equal(t, SupportLevel2, level)

	_, err = ParseSupportLevel("nivel_4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nivel_4")
}

func TestParseCrisisIntensity(t *testing.T) {
	intensity, err := ParseCrisisIntensity("alta")
	require.NoError(t, err)
	assert.Equal(t, IntensityHigh, intensity)

	_, err = ParseCrisisIntensity("critica")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "critica")
}

func TestParseRiskLevel(t *testing.T) {
	risk, err := ParseRiskLevel("Amarelo")
	require.NoError(t, err)
	assert.Equal(t, RiskYellow, risk)

	_, err = ParseRiskLevel("azul")
	assert.Error(t, err)
}

func TestParseProfileType(t *testing.T) {
	profile, err := ParseProfileType("equipe_escolar")
	require.NoError(t, err)
	assert.Equal(t, ProfileSchoolStaff, profile)
	assert.False(t, profile.IsAdmin())

	profile, err = ParseProfileType("ADMIN")
	require.NoError(t, err)
	assert.True(t, profile.IsAdmin())

	_, err = ParseProfileType("visitante")
	assert.Error(t, err)
}

func TestParseFontSize(t *testing.T) {
	size, err := ParseFontSize("grande")
	require.NoError(t, err)
	assert.Equal(t, FontSizeLarge, size)

	_, err = ParseFontSize("gigante")
	assert.Error(t, err)
}
