package service

import (
	"context"
	"time"

	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/repository"
	apperrors "github.com/spec-kit/crisis-support-service/pkg/util"
)

// ChildService manages child profiles.
type ChildService struct {
	children repository.ChildRepository
	minAge   int
	maxAge   int
}

// NewChildService constructs the service with default age bounds.
func NewChildService(children repository.ChildRepository) *ChildService {
	return NewChildServiceWithBounds(children, domain.DefaultMinAgeYears, domain.DefaultMaxAgeYears)
}

// NewChildServiceWithBounds constructs the service with custom age bounds.
func NewChildServiceWithBounds(children repository.ChildRepository, minAge, maxAge int) *ChildService {
	return &ChildService{children: children, minAge: minAge, maxAge: maxAge}
}

// ChildCreateInput describes a child registration payload.
type ChildCreateInput struct {
	BirthDate    time.Time
	Severity     domain.Severity
	SupportLevel domain.SupportLevel
	SchoolID     *string
	GuardianIDs  []string
}

// ChildUpdateInput carries optional profile changes.
type ChildUpdateInput struct {
	Severity     *domain.Severity
	SupportLevel *domain.SupportLevel
	SchoolID     *string
	GuardianIDs  []string
}

// CreateChild registers a child; guardians and admins only.
func (s *ChildService) CreateChild(ctx context.Context, actor *domain.User, input ChildCreateInput) (*domain.Child, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if actor.Profile != domain.ProfileAdmin && actor.Profile != domain.ProfileGuardian {
		return nil, apperrors.NewForbidden("guardian profile required")
	}

	birthDate, err := domain.NewBirthDateWithBounds(input.BirthDate, s.minAge, s.maxAge)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	guardians := input.GuardianIDs
	if actor.Profile == domain.ProfileGuardian {
		found := false
		for _, id := range guardians {
			if id == actor.ID {
				found = true
			}
		}
		if !found {
			guardians = append(guardians, actor.ID)
		}
	}

	child := domain.NewChild(birthDate, input.Severity, input.SupportLevel, input.SchoolID, guardians)
	agg := domain.NewChildAggregate(child)
	if err := s.children.Save(ctx, agg); err != nil {
		return nil, err
	}
	return &child, nil
}

// GetChild returns a child profile for an authorized caller.
func (s *ChildService) GetChild(ctx context.Context, actor *domain.User, childID string) (*domain.Child, error) {
	agg, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	child := agg.Child()
	if !canAccessChild(actor, child) {
		return nil, apperrors.NewForbidden("no access to this child")
	}
	return &child, nil
}

// UpdateChild applies profile changes while keeping the history intact.
func (s *ChildService) UpdateChild(ctx context.Context, actor *domain.User, childID string, input ChildUpdateInput) (*domain.Child, error) {
	agg, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	child := agg.Child()
	if !canAccessChild(actor, child) {
		return nil, apperrors.NewForbidden("no access to this child")
	}

	if input.Severity != nil {
		child.SetSeverity(*input.Severity)
	}
	if input.SupportLevel != nil {
		child.SetSupportLevel(*input.SupportLevel)
	}
	if input.SchoolID != nil {
		child.SetSchool(input.SchoolID)
	}
	for _, guardianID := range input.GuardianIDs {
		child.AddGuardian(guardianID)
	}

	updated, err := agg.UpdateChild(child)
	if err != nil {
		return nil, err
	}
	if err := s.children.Save(ctx, updated); err != nil {
		return nil, err
	}
	result := updated.Child()
	return &result, nil
}

// DeleteChild removes a child and all history; admins only.
func (s *ChildService) DeleteChild(ctx context.Context, actor *domain.User, childID string) error {
	if actor == nil || !actor.Profile.IsAdmin() {
		return apperrors.NewForbidden("admin profile required")
	}
	return s.children.Delete(ctx, childID)
}

// ListBySchool returns the children of a school for its staff.
func (s *ChildService) ListBySchool(ctx context.Context, actor *domain.User, schoolID string) ([]domain.Child, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !actor.Profile.IsAdmin() {
		if !actor.IsSchoolStaff() || actor.SchoolID == nil || *actor.SchoolID != schoolID {
			return nil, apperrors.NewForbidden("no access to this school")
		}
	}
	return s.children.ListBySchool(ctx, schoolID)
}
