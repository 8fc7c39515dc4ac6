package service

import (
	"context"

	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/repository"
	apperrors "github.com/spec-kit/crisis-support-service/pkg/util"
)

// EnvironmentService manages the school spaces children can preview.
type EnvironmentService struct {
	environments repository.EnvironmentRepository
}

// NewEnvironmentService constructs the service.
func NewEnvironmentService(environments repository.EnvironmentRepository) *EnvironmentService {
	return &EnvironmentService{environments: environments}
}

// EnvironmentUpdateInput carries optional environment changes.
type EnvironmentUpdateInput struct {
	Name        *string
	Description *string
	MediaURLs   []string
}

func requireSchoolWriter(actor *domain.User, schoolID string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if actor.Profile.IsAdmin() {
		return nil
	}
	if actor.IsSchoolStaff() && actor.SchoolID != nil && *actor.SchoolID == schoolID {
		return nil
	}
	return apperrors.NewForbidden("no access to this school")
}

// CreateEnvironment adds a previewable space to a school.
func (s *EnvironmentService) CreateEnvironment(ctx context.Context, actor *domain.User, schoolID, name string, description *string, mediaURLs []string) (*domain.SchoolEnvironment, error) {
	if err := requireSchoolWriter(actor, schoolID); err != nil {
		return nil, err
	}
	env, err := domain.NewSchoolEnvironment(schoolID, name, description, mediaURLs)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if err := s.environments.Create(ctx, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// UpdateEnvironment modifies an environment of the caller's school.
func (s *EnvironmentService) UpdateEnvironment(ctx context.Context, actor *domain.User, envID string, input EnvironmentUpdateInput) (*domain.SchoolEnvironment, error) {
	env, err := s.environments.GetByID(ctx, envID)
	if err != nil {
		return nil, err
	}
	if err := requireSchoolWriter(actor, env.SchoolID); err != nil {
		return nil, err
	}
	if err := env.Update(input.Name, input.Description, input.MediaURLs); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	if err := s.environments.Update(ctx, env); err != nil {
		return nil, err
	}
	return env, nil
}

// ListEnvironments returns the environments of a school. Reading is open
// to any authenticated profile so families can preview spaces.
func (s *EnvironmentService) ListEnvironments(ctx context.Context, actor *domain.User, schoolID string) ([]domain.SchoolEnvironment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return s.environments.ListBySchool(ctx, schoolID)
}

// DeleteEnvironment removes an environment.
func (s *EnvironmentService) DeleteEnvironment(ctx context.Context, actor *domain.User, envID string) error {
	env, err := s.environments.GetByID(ctx, envID)
	if err != nil {
		return err
	}
	if err := requireSchoolWriter(actor, env.SchoolID); err != nil {
		return err
	}
	return s.environments.Delete(ctx, envID)
}
