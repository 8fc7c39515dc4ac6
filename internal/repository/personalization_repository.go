package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crisis-support-service/internal/domain"
)

// PersonalizationRepository stores per-child sensory profiles.
type PersonalizationRepository interface {
	Upsert(ctx context.Context, profile *domain.SensoryProfile) error
	GetByChild(ctx context.Context, childID string) (*domain.SensoryProfile, error)
}

type personalizationRepository struct {
	pool *pgxpool.Pool
}

// NewPersonalizationRepository constructs repository.
func NewPersonalizationRepository(pool *pgxpool.Pool) PersonalizationRepository {
	return &personalizationRepository{pool: pool}
}

// Upsert keeps one profile per child, replacing any previous settings.
func (r *personalizationRepository) Upsert(ctx context.Context, profile *domain.SensoryProfile) error {
	const query = `
        INSERT INTO sensory_profiles (id, child_id, palette, font_size, icons, sounds, animations, high_contrast)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (child_id) DO UPDATE SET
            palette=EXCLUDED.palette,
            font_size=EXCLUDED.font_size,
            icons=EXCLUDED.icons,
            sounds=EXCLUDED.sounds,
            animations=EXCLUDED.animations,
            high_contrast=EXCLUDED.high_contrast,
            updated_at=NOW()`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.ChildID,
		profile.Palette,
		profile.FontSize,
		profile.Icons,
		profile.Sounds,
		profile.Animations,
		profile.HighContrast,
	)
	return err
}

func (r *personalizationRepository) GetByChild(ctx context.Context, childID string) (*domain.SensoryProfile, error) {
	const query = `
        SELECT id, child_id, palette, font_size, icons, sounds, animations, high_contrast
        FROM sensory_profiles WHERE child_id=$1`
	var (
		profile  domain.SensoryProfile
		fontSize string
	)
	if err := r.pool.QueryRow(ctx, query, childID).Scan(
		&profile.ID,
		&profile.ChildID,
		&profile.Palette,
		&fontSize,
		&profile.Icons,
		&profile.Sounds,
		&profile.Animations,
		&profile.HighContrast,
	); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseFontSize(fontSize)
	if err != nil {
		return nil, err
	}
	profile.FontSize = parsed
	return &profile, nil
}
