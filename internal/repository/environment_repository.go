package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crisis-support-service/internal/domain"
)

// EnvironmentRepository manages persistence for school environments.
type EnvironmentRepository interface {
	Create(ctx context.Context, env *domain.SchoolEnvironment) error
	Update(ctx context.Context, env *domain.SchoolEnvironment) error
	GetByID(ctx context.Context, id string) (*domain.SchoolEnvironment, error)
	ListBySchool(ctx context.Context, schoolID string) ([]domain.SchoolEnvironment, error)
	Delete(ctx context.Context, id string) error
}

type environmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnvironmentRepository constructs repository.
func NewEnvironmentRepository(pool *pgxpool.Pool) EnvironmentRepository {
	return &environmentRepository{pool: pool}
}

func (r *environmentRepository) Create(ctx context.Context, env *domain.SchoolEnvironment) error {
	const query = `
        INSERT INTO school_environments (id, school_id, name, description, media_urls)
        VALUES ($1,$2,$3,$4,$5)`
	_, err := r.pool.Exec(ctx, query,
		env.ID,
		env.SchoolID,
		env.Name,
		env.Description,
		env.MediaURLs,
	)
	return err
}

func (r *environmentRepository) Update(ctx context.Context, env *domain.SchoolEnvironment) error {
	const query = `
        UPDATE school_environments
        SET name=$1, description=$2, media_urls=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		env.Name,
		env.Description,
		env.MediaURLs,
		env.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *environmentRepository) GetByID(ctx context.Context, id string) (*domain.SchoolEnvironment, error) {
	const query = `
        SELECT id, school_id, name, description, media_urls
        FROM school_environments WHERE id=$1`
	var env domain.SchoolEnvironment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&env.ID,
		&env.SchoolID,
		&env.Name,
		&env.Description,
		&env.MediaURLs,
	); err != nil {
		return nil, err
	}
	return &env, nil
}

func (r *environmentRepository) ListBySchool(ctx context.Context, schoolID string) ([]domain.SchoolEnvironment, error) {
	const query = `
        SELECT id, school_id, name, description, media_urls
        FROM school_environments WHERE school_id=$1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SchoolEnvironment
	for rows.Next() {
		var env domain.SchoolEnvironment
		if err := rows.Scan(&env.ID, &env.SchoolID, &env.Name, &env.Description, &env.MediaURLs); err != nil {
			return nil, err
		}
		result = append(result, env)
	}
	return result, rows.Err()
}

func (r *environmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM school_environments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
