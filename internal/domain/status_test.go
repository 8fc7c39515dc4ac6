package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStatusTransitions(t *testing.T) {
	assert.True(t, RequestStatusPending.CanTransitionTo(RequestStatusInService))
	assert.True(t, RequestStatusInService.CanTransitionTo(RequestStatusResolved))

	// skip-ahead, backward, self-loop and anything out of RESOLVIDO.
	assert.False(t, RequestStatusPending.CanTransitionTo(RequestStatusResolved))
	assert.False(t, RequestStatusInService.CanTransitionTo(RequestStatusPending))
	assert.False(t, RequestStatusPending.CanTransitionTo(RequestStatusPending))
	assert.False(t, RequestStatusInService.CanTransitionTo(RequestStatusInService))
	assert.False(t, RequestStatusResolved.CanTransitionTo(RequestStatusResolved))
	assert.False(t, RequestStatusResolved.CanTransitionTo(RequestStatusPending))
	assert.False(t, RequestStatusResolved.CanTransitionTo(RequestStatusInService))
}

func TestSupportRequestUpdateStatus(t *testing.T) {
	request, err := NewSupportRequest(time.Now(), IntensityHigh, nil)
	require.NoError(t, err)
	assert.Equal(t, RequestStatusPending, request.Status)

	require.NoError(t, request.UpdateStatus(RequestStatusInService))
	require.NoError(t, request.UpdateStatus(RequestStatusResolved))

	err = request.UpdateStatus(RequestStatusInService)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status transition")
	assert.Equal(t, RequestStatusResolved, request.Status)
}

func TestSupportRequestUpdateStatusRejectsSkip(t *testing.T) {
	request, err := NewSupportRequest(time.Now(), IntensityMedium, nil)
	require.NoError(t, err)

	err = request.UpdateStatus(RequestStatusResolved)
	require.Error(t, err)
	assert.Equal(t, RequestStatusPending, request.Status)
}

func TestParseRequestStatus(t *testing.T) {
	status, err := ParseRequestStatus("em_atendimento")
	require.NoError(t, err)
	assert.Equal(t, RequestStatusInService, status)

	_, err = ParseRequestStatus("encerrado")
	assert.Error(t, err)
}

func TestParseEventStatus(t *testing.T) {
	status, err := ParseEventStatus("confirmado")
	require.NoError(t, err)
	assert.Equal(t, EventStatusConfirmed, status)

	_, err = ParseEventStatus("adiado")
	assert.Error(t, err)
}
