package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChild(t *testing.T) Child {
	t.Helper()
	bd, err := NewBirthDate(time.Date(2015, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return NewChild(bd, SeverityModerate, SupportLevel2, nil, []string{"guardian-1"})
}

func newTestCrisis(t *testing.T, intensity CrisisIntensity) CrisisRecord {
	t.Helper()
	crisis, err := NewCrisisRecord(time.Now().Add(-time.Hour), intensity, nil, nil)
	require.NoError(t, err)
	return crisis
}

func TestAddCrisisRejectsSecondOpenCrisis(t *testing.T) {
	agg := NewChildAggregate(newTestChild(t))

	agg, err := agg.AddCrisis(newTestCrisis(t, IntensityHigh))
	require.NoError(t, err)
	require.Len(t, agg.Crises(), 1)

	_, err = agg.AddCrisis(newTestCrisis(t, IntensityLow))
	require.ErrorIs(t, err, ErrCrisisInProgress)

	// the failed attempt must leave the aggregate untouched
	assert.Len(t, agg.Crises(), 1)
}

func TestAddCrisisAllowedAfterResolution(t *testing.T) {
	agg := NewChildAggregate(newTestChild(t))

	first := newTestCrisis(t, IntensityHigh)
	agg, err := agg.AddCrisis(first)
	require.NoError(t, err)

	agg, err = agg.MarkCrisisEfficacy(first.ID, true)
	require.NoError(t, err)

	agg, err = agg.AddCrisis(newTestCrisis(t, IntensityMedium))
	require.NoError(t, err)
	assert.Len(t, agg.Crises(), 2)
}

func TestAddSupportRequestRequiresOpenCrisis(t *testing.T) {
	agg := NewChildAggregate(newTestChild(t))

	request, err := NewSupportRequest(time.Now(), IntensityHigh, nil)
	require.NoError(t, err)

	// no crises at all
	_, err = agg.AddSupportRequest(request)
	require.ErrorIs(t, err, ErrNoOpenCrisis)

	// all crises resolved
	crisis := newTestCrisis(t, IntensityHigh)
	agg, err = agg.AddCrisis(crisis)
	require.NoError(t, err)
	agg, err = agg.MarkCrisisEfficacy(crisis.ID, false)
	require.NoError(t, err)

	_, err = agg.AddSupportRequest(request)
	require.ErrorIs(t, err, ErrNoOpenCrisis)
	assert.Empty(t, agg.SupportRequests())
}

func TestAddSupportRequestWithOpenCrisis(t *testing.T) {
	agg := NewChildAggregate(newTestChild(t))

	agg, err := agg.AddCrisis(newTestCrisis(t, IntensityHigh))
	require.NoError(t, err)

	request, err := NewSupportRequest(time.Now(), IntensityHigh, nil)
	require.NoError(t, err)

	agg, err = agg.AddSupportRequest(request)
	require.NoError(t, err)
	assert.Len(t, agg.SupportRequests(), 1)
}

func TestMarkCrisisEfficacy(t *testing.T) {
	agg := NewChildAggregate(newTestChild(t))

	crisis := newTestCrisis(t, IntensityHigh)
	agg, err := agg.AddCrisis(crisis)
	require.NoError(t, err)

	updated, err := agg.MarkCrisisEfficacy(crisis.ID, true)
	require.NoError(t, err)

	// copy-on-write: the original aggregate still sees an open crisis
	_, open := agg.OpenCrisis()
	assert.True(t, open)

	crises := updated.Crises()
	require.Len(t, crises, 1)
	require.NotNil(t, crises[0].Efficacy)
	assert.True(t, *crises[0].Efficacy)
	_, open = updated.OpenCrisis()
	assert.False(t, open)
}

func TestMarkCrisisEfficacyUnknownCrisis(t *testing.T) {
	agg := NewChildAggregate(newTestChild(t))

	_, err := agg.MarkCrisisEfficacy("missing", true)
	require.ErrorIs(t, err, ErrCrisisNotFound)
}

func TestMarkCrisisEfficacyKeepsSupportRequests(t *testing.T) {
	agg := NewChildAggregate(newTestChild(t))

	crisis := newTestCrisis(t, IntensityHigh)
	agg, err := agg.AddCrisis(crisis)
	require.NoError(t, err)

	request, err := NewSupportRequest(time.Now(), crisis.Intensity, nil)
	require.NoError(t, err)
	agg, err = agg.AddSupportRequest(request)
	require.NoError(t, err)

	// resolving the crisis must not orphan the request it spawned
	agg, err = agg.MarkCrisisEfficacy(crisis.ID, true)
	require.NoError(t, err)
	assert.Len(t, agg.SupportRequests(), 1)
}

func TestUpdateSupportRequestStatus(t *testing.T) {
	agg := NewChildAggregate(newTestChild(t))

	agg, err := agg.AddCrisis(newTestCrisis(t, IntensityHigh))
	require.NoError(t, err)

	request, err := NewSupportRequest(time.Now(), IntensityHigh, nil)
	require.NoError(t, err)
	agg, err = agg.AddSupportRequest(request)
	require.NoError(t, err)

	agg, err = agg.UpdateSupportRequestStatus(request.ID, RequestStatusInService)
	require.NoError(t, err)
	assert.Equal(t, RequestStatusInService, agg.SupportRequests()[0].Status)

	_, err = agg.UpdateSupportRequestStatus(request.ID, RequestStatusPending)
	require.Error(t, err)
	assert.Equal(t, RequestStatusInService, agg.SupportRequests()[0].Status)

	_, err = agg.UpdateSupportRequestStatus("missing", RequestStatusResolved)
	require.ErrorIs(t, err, ErrSupportRequestNotFound)
}

func TestChildAggregateFromStateRejectsInvalidState(t *testing.T) {
	child := newTestChild(t)

	t.Run("multiple open crises", func(t *testing.T) {
		crises := []CrisisRecord{newTestCrisis(t, IntensityHigh), newTestCrisis(t, IntensityLow)}
		_, err := ChildAggregateFromState(child, crises, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple unresolved crises")
	})

	t.Run("support requests without crisis history", func(t *testing.T) {
		request, err := NewSupportRequest(time.Now(), IntensityHigh, nil)
		require.NoError(t, err)
		_, err = ChildAggregateFromState(child, nil, []SupportRequest{request}, nil)
		require.Error(t, err)
	})

	t.Run("consistent state restores", func(t *testing.T) {
		crisis := newTestCrisis(t, IntensityHigh)
		request, err := NewSupportRequest(time.Now(), IntensityHigh, nil)
		require.NoError(t, err)

		agg, err := ChildAggregateFromState(child, []CrisisRecord{crisis}, []SupportRequest{request}, nil)
		require.NoError(t, err)
		assert.Len(t, agg.Crises(), 1)
		assert.Len(t, agg.SupportRequests(), 1)
	})
}

func TestUpdateChildKeepsHistory(t *testing.T) {
	agg := NewChildAggregate(newTestChild(t))
	agg, err := agg.AddCrisis(newTestCrisis(t, IntensityLow))
	require.NoError(t, err)

	child := agg.Child()
	child.SetSeverity(SeveritySevere)
	school := "school-9"
	child.SetSchool(&school)
	child.AddGuardian("guardian-2")
	child.AddGuardian("guardian-2")

	agg, err = agg.UpdateChild(child)
	require.NoError(t, err)
	assert.Equal(t, SeveritySevere, agg.Child().Severity)
	assert.Equal(t, []string{"guardian-1", "guardian-2"}, agg.Child().GuardianIDs)
	assert.Len(t, agg.Crises(), 1)
}

func TestAddIntervention(t *testing.T) {
	agg := NewChildAggregate(newTestChild(t))

	intervention, err := NewIntervention(time.Now(), "Técnica de respiração", "Ana")
	require.NoError(t, err)
	require.NoError(t, intervention.RecordOutcome("Crise reduzida"))

	agg, err = agg.AddIntervention(intervention)
	require.NoError(t, err)
	require.Len(t, agg.Interventions(), 1)
	require.NotNil(t, agg.Interventions()[0].Outcome)
	assert.Equal(t, "Crise reduzida", *agg.Interventions()[0].Outcome)
}

func TestNewInterventionValidation(t *testing.T) {
	_, err := NewIntervention(time.Now(), " ", "Ana")
	assert.Error(t, err)

	_, err = NewIntervention(time.Now(), "Mudança de ambiente", "")
	assert.Error(t, err)
}

func TestRecordOutcomeOnce(t *testing.T) {
	intervention, err := NewIntervention(time.Now(), "Mudança de ambiente", "Ana")
	require.NoError(t, err)

	require.NoError(t, intervention.RecordOutcome("Crise reduzida"))
	err = intervention.RecordOutcome("outro resultado")
	assert.Error(t, err)
	assert.Equal(t, "Crise reduzida", *intervention.Outcome)
}
