package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/repository"
	apperrors "github.com/spec-kit/crisis-support-service/pkg/util"
)

// PersonalizationService manages per-child sensory settings.
type PersonalizationService struct {
	profiles repository.PersonalizationRepository
	children repository.ChildRepository
}

// NewPersonalizationService constructs the service.
func NewPersonalizationService(profiles repository.PersonalizationRepository, children repository.ChildRepository) *PersonalizationService {
	return &PersonalizationService{profiles: profiles, children: children}
}

// SensoryInput carries optional sensory setting changes.
type SensoryInput struct {
	Palette      *string
	FontSize     *domain.FontSize
	Icons        *string
	Sounds       *bool
	Animations   *bool
	HighContrast *bool
}

// GetProfile returns the sensory profile for a child, falling back to
// defaults when nothing was saved yet.
func (s *PersonalizationService) GetProfile(ctx context.Context, actor *domain.User, childID string) (*domain.SensoryProfile, error) {
	if err := s.authorize(ctx, actor, childID); err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByChild(ctx, childID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			fallback, err := domain.NewSensoryProfile(childID)
			if err != nil {
				return nil, err
			}
			return &fallback, nil
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile merges the given settings into the stored profile.
func (s *PersonalizationService) UpdateProfile(ctx context.Context, actor *domain.User, childID string, input SensoryInput) (*domain.SensoryProfile, error) {
	profile, err := s.GetProfile(ctx, actor, childID)
	if err != nil {
		return nil, err
	}

	if input.Palette != nil {
		profile.Palette = input.Palette
	}
	if input.FontSize != nil {
		profile.FontSize = *input.FontSize
	}
	if input.Icons != nil {
		profile.Icons = input.Icons
	}
	if input.Sounds != nil {
		profile.Sounds = *input.Sounds
	}
	if input.Animations != nil {
		profile.Animations = *input.Animations
	}
	if input.HighContrast != nil {
		profile.HighContrast = *input.HighContrast
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *PersonalizationService) authorize(ctx context.Context, actor *domain.User, childID string) error {
	agg, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return err
	}
	if !canAccessChild(actor, agg.Child()) {
		return apperrors.NewForbidden("no access to this child")
	}
	return nil
}
