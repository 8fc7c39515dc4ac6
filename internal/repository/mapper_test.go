package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crisis-support-service/internal/domain"
)

func buildAggregate(t *testing.T) *domain.ChildAggregate {
	t.Helper()

	bd, err := domain.NewBirthDate(time.Date(2016, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	school := "school-1"
	child := domain.NewChild(bd, domain.SeveritySevere, domain.SupportLevel3, &school, []string{"g-1", "g-2"})
	agg := domain.NewChildAggregate(child)

	trigger := "barulho alto"
	resolved, err := domain.NewCrisisRecord(
		time.Now().Add(-48*time.Hour).Truncate(time.Microsecond), domain.IntensityMedium, nil, &trigger)
	require.NoError(t, err)
	agg, err = agg.AddCrisis(resolved)
	require.NoError(t, err)
	agg, err = agg.MarkCrisisEfficacy(resolved.ID, true)
	require.NoError(t, err)

	description := "crise na sala de aula"
	open, err := domain.NewCrisisRecord(
		time.Now().Add(-time.Hour).Truncate(time.Microsecond), domain.IntensityHigh, &description, nil)
	require.NoError(t, err)
	agg, err = agg.AddCrisis(open)
	require.NoError(t, err)

	request, err := domain.NewSupportRequest(
		time.Now().Truncate(time.Microsecond), domain.IntensityHigh, &description)
	require.NoError(t, err)
	agg, err = agg.AddSupportRequest(request)
	require.NoError(t, err)

	intervention, err := domain.NewIntervention(
		time.Now().Truncate(time.Microsecond), "Redirecionamento", "prof-1")
	require.NoError(t, err)
	agg, err = agg.AddIntervention(intervention)
	require.NoError(t, err)

	return agg
}

func TestAggregateRowsRoundTrip(t *testing.T) {
	agg := buildAggregate(t)

	rows := rowsFromAggregate(agg)
	restored, err := aggregateFromRows(rows)
	require.NoError(t, err)

	assert.Equal(t, agg.Child(), restored.Child())
	assert.Equal(t, agg.Crises(), restored.Crises())
	assert.Equal(t, agg.SupportRequests(), restored.SupportRequests())
	assert.Equal(t, agg.Interventions(), restored.Interventions())
}

func TestRowsFromAggregateOrdering(t *testing.T) {
	agg := buildAggregate(t)

	rows := rowsFromAggregate(agg)
	require.Len(t, rows.Crises, 2)
	// insertion order is preserved: the resolved crisis came first
	assert.NotNil(t, rows.Crises[0].Efficacy)
	assert.Nil(t, rows.Crises[1].Efficacy)
	assert.Equal(t, []string{"g-1", "g-2"}, rows.GuardianIDs)
}

func TestAggregateFromRowsRejectsBadEnums(t *testing.T) {
	agg := buildAggregate(t)
	rows := rowsFromAggregate(agg)

	rows.Child.Severity = "GRAVE"
	_, err := aggregateFromRows(rows)
	require.Error(t, err)
}

func TestAggregateFromRowsRejectsInconsistentState(t *testing.T) {
	agg := buildAggregate(t)
	rows := rowsFromAggregate(agg)

	// two open crises must not restore
	rows.Crises[0].Efficacy = nil
	_, err := aggregateFromRows(rows)
	require.Error(t, err)
}
