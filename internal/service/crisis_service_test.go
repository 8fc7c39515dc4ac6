package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crisis-support-service/internal/domain"
)

type fakeChildRepo struct {
	aggregates map[string]*domain.ChildAggregate
	saves      int
}

func newFakeChildRepo() *fakeChildRepo {
	return &fakeChildRepo{aggregates: make(map[string]*domain.ChildAggregate)}
}

func (f *fakeChildRepo) GetByID(_ context.Context, id string) (*domain.ChildAggregate, error) {
	agg, ok := f.aggregates[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return agg, nil
}

func (f *fakeChildRepo) Save(_ context.Context, agg *domain.ChildAggregate) error {
	f.aggregates[agg.Child().ID] = agg
	f.saves++
	return nil
}

func (f *fakeChildRepo) ListBySchool(_ context.Context, schoolID string) ([]domain.Child, error) {
	var result []domain.Child
	for _, agg := range f.aggregates {
		child := agg.Child()
		if child.SchoolID != nil && *child.SchoolID == schoolID {
			result = append(result, child)
		}
	}
	return result, nil
}

func (f *fakeChildRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.aggregates[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.aggregates, id)
	return nil
}

type fakeNotifier struct {
	kinds []string
	fail  bool
}

func (f *fakeNotifier) NotifySupportRequested(_ context.Context, _, _, kind string, _ time.Time) error {
	f.kinds = append(f.kinds, kind)
	if f.fail {
		return errors.New("notification channel down")
	}
	return nil
}

func (f *fakeNotifier) NotifyRoutineChanged(_ context.Context, _, _ string, _ domain.RiskLevel, _ time.Time) error {
	if f.fail {
		return errors.New("notification channel down")
	}
	return nil
}

func seedChild(t *testing.T, repo *fakeChildRepo, schoolID string) domain.Child {
	t.Helper()
	bd, err := domain.NewBirthDate(time.Date(2017, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	child := domain.NewChild(bd, domain.SeverityModerate, domain.SupportLevel2, &schoolID, []string{"guardian-1"})
	require.NoError(t, repo.Save(context.Background(), domain.NewChildAggregate(child)))
	repo.saves = 0
	return child
}

func staffUser(schoolID string) *domain.User {
	return &domain.User{ID: "staff-1", Profile: domain.ProfileSchoolStaff, SchoolID: &schoolID}
}

func guardianUser() *domain.User {
	return &domain.User{ID: "guardian-1", Profile: domain.ProfileGuardian}
}

func newService(repo *fakeChildRepo, notifier Notifier) *CrisisService {
	return NewCrisisService(CrisisDependencies{ChildRepo: repo, Notifier: notifier})
}

func TestCrisisLifecycle(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	svc := newService(repo, nil)
	staff := staffUser("school-1")
	ctx := context.Background()

	crisis, err := svc.RegisterCrisis(ctx, staff, child.ID, CrisisInput{
		OccurredAt: time.Now().Add(-time.Hour),
		Intensity:  domain.IntensityHigh,
	})
	require.NoError(t, err)

	// second open crisis is rejected
	_, err = svc.RegisterCrisis(ctx, staff, child.ID, CrisisInput{
		OccurredAt: time.Now(),
		Intensity:  domain.IntensityLow,
	})
	require.ErrorIs(t, err, domain.ErrCrisisInProgress)

	outcome := "acalmou em dez minutos"
	_, err = svc.RegisterIntervention(ctx, staff, child.ID, InterventionInput{
		AppliedAt: time.Now(),
		Strategy:  "Técnica de respiração",
		AppliedBy: "Ana",
		Outcome:   &outcome,
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkCrisisEfficacy(ctx, staff, child.ID, crisis.ID, true))

	// after resolution a new crisis may open
	_, err = svc.RegisterCrisis(ctx, staff, child.ID, CrisisInput{
		OccurredAt: time.Now(),
		Intensity:  domain.IntensityMedium,
	})
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, staff, child.ID)
	require.NoError(t, err)
	assert.Len(t, history.Crises, 2)
	assert.Len(t, history.Interventions, 1)
}

func TestRequestSupportSynthesizesSOSCrisis(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier)
	ctx := context.Background()

	request, err := svc.RequestSupport(ctx, guardianUser(), child.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, request.Status)
	assert.Equal(t, []string{SupportKindSOS}, notifier.kinds)

	history, err := svc.GetHistory(ctx, guardianUser(), child.ID)
	require.NoError(t, err)
	require.Len(t, history.Crises, 1)
	assert.Equal(t, domain.IntensityHigh, history.Crises[0].Intensity)
	require.NotNil(t, history.Crises[0].Description)
	assert.Equal(t, DefaultSOSDescription, *history.Crises[0].Description)
}

func TestRequestSupportFallsBackToDefaultDescription(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	svc := newService(repo, nil)
	staff := staffUser("school-1")
	ctx := context.Background()

	// open crisis registered without a description
	_, err := svc.RegisterCrisis(ctx, staff, child.ID, CrisisInput{
		OccurredAt: time.Now().Add(-time.Minute),
		Intensity:  domain.IntensityMedium,
	})
	require.NoError(t, err)

	request, err := svc.RequestSupport(ctx, staff, child.ID)
	require.NoError(t, err)
	require.NotNil(t, request.Crisis.Description)
	assert.Equal(t, DefaultSOSDescription, *request.Crisis.Description)
	assert.Equal(t, domain.IntensityMedium, request.Crisis.Intensity)
}

func TestRequestSupportAfterResolutionSynthesizesAgain(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier)
	staff := staffUser("school-1")
	ctx := context.Background()

	first, err := svc.RequestSupport(ctx, staff, child.ID)
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, staff, child.ID)
	require.NoError(t, err)
	require.Len(t, history.Crises, 1)
	require.NoError(t, svc.MarkCrisisEfficacy(ctx, staff, child.ID, history.Crises[0].ID, true))

	// no open crisis remains, so the second press synthesizes a new one
	second, err := svc.RequestSupport(ctx, staff, child.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []string{SupportKindSOS, SupportKindSOS}, notifier.kinds)

	history, err = svc.GetHistory(ctx, staff, child.ID)
	require.NoError(t, err)
	require.Len(t, history.Crises, 2)
	require.Len(t, history.SupportRequests, 2)

	open := 0
	for _, crisis := range history.Crises {
		if crisis.Open() {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func TestRequestSupportDuringOpenCrisis(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier)
	staff := staffUser("school-1")
	ctx := context.Background()

	_, err := svc.RegisterCrisis(ctx, staff, child.ID, CrisisInput{
		OccurredAt: time.Now().Add(-time.Minute),
		Intensity:  domain.IntensityMedium,
	})
	require.NoError(t, err)

	_, err = svc.RequestSupport(ctx, staff, child.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{SupportKindCrisis}, notifier.kinds)

	history, err := svc.GetHistory(ctx, staff, child.ID)
	require.NoError(t, err)
	// no extra crisis was synthesized
	assert.Len(t, history.Crises, 1)
}

func TestRequestSupportSurvivesNotifierFailure(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	svc := newService(repo, &fakeNotifier{fail: true})

	_, err := svc.RequestSupport(context.Background(), guardianUser(), child.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saves)
}

func TestSupportRequestStaysAfterCrisisResolution(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	svc := newService(repo, nil)
	staff := staffUser("school-1")
	ctx := context.Background()

	crisis, err := svc.RegisterCrisis(ctx, staff, child.ID, CrisisInput{
		OccurredAt: time.Now().Add(-time.Minute),
		Intensity:  domain.IntensityHigh,
	})
	require.NoError(t, err)
	request, err := svc.RequestSupport(ctx, staff, child.ID)
	require.NoError(t, err)

	require.NoError(t, svc.MarkCrisisEfficacy(ctx, staff, child.ID, crisis.ID, true))

	history, err := svc.GetHistory(ctx, staff, child.ID)
	require.NoError(t, err)
	require.Len(t, history.SupportRequests, 1)
	assert.Equal(t, request.ID, history.SupportRequests[0].ID)
	assert.Equal(t, domain.RequestStatusPending, history.SupportRequests[0].Status)
}

func TestUpdateSupportRequestStatusFlow(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	svc := newService(repo, nil)
	staff := staffUser("school-1")
	ctx := context.Background()

	_, err := svc.RegisterCrisis(ctx, staff, child.ID, CrisisInput{
		OccurredAt: time.Now().Add(-time.Minute),
		Intensity:  domain.IntensityHigh,
	})
	require.NoError(t, err)
	request, err := svc.RequestSupport(ctx, staff, child.ID)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateSupportRequestStatus(ctx, staff, child.ID, request.ID, domain.RequestStatusInService))
	require.NoError(t, svc.UpdateSupportRequestStatus(ctx, staff, child.ID, request.ID, domain.RequestStatusResolved))

	err = svc.UpdateSupportRequestStatus(ctx, staff, child.ID, request.ID, domain.RequestStatusInService)
	require.Error(t, err)
}

func TestPermissions(t *testing.T) {
	repo := newFakeChildRepo()
	child := seedChild(t, repo, "school-1")
	svc := newService(repo, nil)
	ctx := context.Background()

	// guardian of another child cannot see this one
	stranger := &domain.User{ID: "guardian-9", Profile: domain.ProfileGuardian}
	_, err := svc.GetHistory(ctx, stranger, child.ID)
	require.Error(t, err)

	// staff of another school cannot register a crisis
	otherSchool := "school-2"
	outsider := &domain.User{ID: "staff-2", Profile: domain.ProfileSchoolStaff, SchoolID: &otherSchool}
	_, err = svc.RegisterCrisis(ctx, outsider, child.ID, CrisisInput{
		OccurredAt: time.Now(),
		Intensity:  domain.IntensityLow,
	})
	require.Error(t, err)

	// guardians may view but not register crises
	_, err = svc.RegisterCrisis(ctx, guardianUser(), child.ID, CrisisInput{
		OccurredAt: time.Now(),
		Intensity:  domain.IntensityLow,
	})
	require.Error(t, err)
	_, err = svc.GetHistory(ctx, guardianUser(), child.ID)
	require.NoError(t, err)
}

func TestUnknownChild(t *testing.T) {
	repo := newFakeChildRepo()
	svc := newService(repo, nil)

	_, err := svc.RequestSupport(context.Background(), guardianUser(), "missing")
	require.ErrorIs(t, err, pgx.ErrNoRows)
}
