package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crisis-support-service/internal/domain"
	apperrors "github.com/spec-kit/crisis-support-service/pkg/util"
)

func TestCreateChildAddsActingGuardian(t *testing.T) {
	repo := newFakeChildRepo()
	svc := NewChildService(repo)
	ctx := context.Background()

	child, err := svc.CreateChild(ctx, guardianUser(), ChildCreateInput{
		BirthDate:    time.Date(2018, 3, 15, 0, 0, 0, 0, time.UTC),
		Severity:     domain.SeverityMild,
		SupportLevel: domain.SupportLevel1,
	})
	require.NoError(t, err)
	assert.True(t, child.HasGuardian("guardian-1"))
	assert.Equal(t, 1, repo.saves)
}

func TestCreateChildRejectsStaffProfile(t *testing.T) {
	svc := NewChildService(newFakeChildRepo())

	_, err := svc.CreateChild(context.Background(), staffUser("school-1"), ChildCreateInput{
		BirthDate:    time.Date(2018, 3, 15, 0, 0, 0, 0, time.UTC),
		Severity:     domain.SeverityMild,
		SupportLevel: domain.SupportLevel1,
	})
	var domErr *apperrors.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, "FORBIDDEN", domErr.Code)
}

func TestCreateChildRejectsAdultBirthDate(t *testing.T) {
	svc := NewChildService(newFakeChildRepo())

	_, err := svc.CreateChild(context.Background(), guardianUser(), ChildCreateInput{
		BirthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Severity:     domain.SeverityMild,
		SupportLevel: domain.SupportLevel1,
	})
	var domErr *apperrors.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, "VALIDATION_FAILED", domErr.Code)
}

func TestUpdateChildKeepsHistory(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	crisisSvc := newService(repo, nil)
	childSvc := NewChildService(repo)
	staff := staffUser("school-1")
	ctx := context.Background()

	_, err := crisisSvc.RegisterCrisis(ctx, staff, child.ID, CrisisInput{
		OccurredAt: time.Now().Add(-time.Hour),
		Intensity:  domain.IntensityMedium,
	})
	require.NoError(t, err)

	severity := domain.SeveritySevere
	updated, err := childSvc.UpdateChild(ctx, staff, child.ID, ChildUpdateInput{
		Severity:    &severity,
		GuardianIDs: []string{"guardian-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SeveritySevere, updated.Severity)
	assert.True(t, updated.HasGuardian("guardian-2"))

	agg, err := repo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Len(t, agg.Crises(), 1)
}

func TestDeleteChildRequiresAdmin(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	svc := NewChildService(repo)
	ctx := context.Background()

	err := svc.DeleteChild(ctx, guardianUser(), child.ID)
	var domErr *apperrors.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, "FORBIDDEN", domErr.Code)

	admin := &domain.User{ID: "admin-1", Profile: domain.ProfileAdmin}
	require.NoError(t, svc.DeleteChild(ctx, admin, child.ID))
	_, err = repo.GetByID(ctx, child.ID)
	assert.Error(t, err)
}

func TestListBySchoolScopesStaff(t *testing.T) {
	repo := newFakeChildRepo()
	seedChild(t, repo, "school-1")
	seedChild(t, repo, "school-2")
	svc := NewChildService(repo)
	ctx := context.Background()

	children, err := svc.ListBySchool(ctx, staffUser("school-1"), "school-1")
	require.NoError(t, err)
	assert.Len(t, children, 1)

	_, err = svc.ListBySchool(ctx, staffUser("school-2"), "school-1")
	var domErr *apperrors.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, "FORBIDDEN", domErr.Code)
}
