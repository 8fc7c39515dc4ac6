package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crisis-support-service/internal/domain"
)

// ChildRepository loads and stores whole child aggregates.
type ChildRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ChildAggregate, error)
	Save(ctx context.Context, agg *domain.ChildAggregate) error
	ListBySchool(ctx context.Context, schoolID string) ([]domain.Child, error)
	Delete(ctx context.Context, id string) error
}

type childRepository struct {
	pool *pgxpool.Pool
}

// NewChildRepository instantiates a Postgres-backed repository.
func NewChildRepository(pool *pgxpool.Pool) ChildRepository {
	return &childRepository{pool: pool}
}

func (r *childRepository) GetByID(ctx context.Context, id string) (*domain.ChildAggregate, error) {
	var rows aggregateRows

	const childQuery = `
        SELECT id, birth_date, severity, support_level, school_id
        FROM children WHERE id=$1`
	if err := r.pool.QueryRow(ctx, childQuery, id).Scan(
		&rows.Child.ID,
		&rows.Child.BirthDate,
		&rows.Child.Severity,
		&rows.Child.SupportLevel,
		&rows.Child.SchoolID,
	); err != nil {
		return nil, err
	}

	const guardianQuery = `
        SELECT guardian_user_id FROM child_guardians
        WHERE child_id=$1 ORDER BY position`
	guardianRows, err := r.pool.Query(ctx, guardianQuery, id)
	if err != nil {
		return nil, err
	}
	defer guardianRows.Close()
	for guardianRows.Next() {
		var guardianID string
		if err := guardianRows.Scan(&guardianID); err != nil {
			return nil, err
		}
		rows.GuardianIDs = append(rows.GuardianIDs, guardianID)
	}
	if err := guardianRows.Err(); err != nil {
		return nil, err
	}

	if rows.Crises, err = r.fetchCrises(ctx, id); err != nil {
		return nil, err
	}
	if rows.Requests, err = r.fetchSupportRequests(ctx, id); err != nil {
		return nil, err
	}
	if rows.Interventions, err = r.fetchInterventions(ctx, id); err != nil {
		return nil, err
	}

	return aggregateFromRows(rows)
}

func (r *childRepository) fetchCrises(ctx context.Context, childID string) ([]crisisRow, error) {
	const query = `
        SELECT id, occurred_at, intensity, description, trigger_identified, efficacy
        FROM crisis_records WHERE child_id=$1 ORDER BY position`
	rows, err := r.pool.Query(ctx, query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []crisisRow
	for rows.Next() {
		var row crisisRow
		if err := rows.Scan(
			&row.ID,
			&row.OccurredAt,
			&row.Intensity,
			&row.Description,
			&row.Trigger,
			&row.Efficacy,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *childRepository) fetchSupportRequests(ctx context.Context, childID string) ([]supportRequestRow, error) {
	const query = `
        SELECT id, requested_at, status,
               crisis_id, crisis_occurred_at, crisis_intensity,
               crisis_description, crisis_trigger, crisis_efficacy
        FROM support_requests WHERE child_id=$1 ORDER BY position`
	rows, err := r.pool.Query(ctx, query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []supportRequestRow
	for rows.Next() {
		var row supportRequestRow
		if err := rows.Scan(
			&row.ID,
			&row.RequestedAt,
			&row.Status,
			&row.Crisis.ID,
			&row.Crisis.OccurredAt,
			&row.Crisis.Intensity,
			&row.Crisis.Description,
			&row.Crisis.Trigger,
			&row.Crisis.Efficacy,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *childRepository) fetchInterventions(ctx context.Context, childID string) ([]interventionRow, error) {
	const query = `
        SELECT id, applied_at, strategy, applied_by, outcome
        FROM interventions WHERE child_id=$1 ORDER BY position`
	rows, err := r.pool.Query(ctx, query, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []interventionRow
	for rows.Next() {
		var row interventionRow
		if err := rows.Scan(
			&row.ID,
			&row.AppliedAt,
			&row.Strategy,
			&row.AppliedBy,
			&row.Outcome,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Save persists the full aggregate tree as one transaction. Child rows
// are upserted; dependent collections are deleted and reinserted, which
// keeps the write path simple for the small per-child volumes involved.
func (r *childRepository) Save(ctx context.Context, agg *domain.ChildAggregate) error {
	rows := rowsFromAggregate(agg)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const upsertChild = `
        INSERT INTO children (id, birth_date, severity, support_level, school_id)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO UPDATE SET
            birth_date=EXCLUDED.birth_date,
            severity=EXCLUDED.severity,
            support_level=EXCLUDED.support_level,
            school_id=EXCLUDED.school_id,
            updated_at=NOW()`
	if _, err := tx.Exec(ctx, upsertChild,
		rows.Child.ID,
		rows.Child.BirthDate,
		rows.Child.Severity,
		rows.Child.SupportLevel,
		rows.Child.SchoolID,
	); err != nil {
		return err
	}

	for _, table := range []string{"child_guardians", "crisis_records", "support_requests", "interventions"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE child_id=$1", rows.Child.ID); err != nil {
			return err
		}
	}

	for i, guardianID := range rows.GuardianIDs {
		const query = `
            INSERT INTO child_guardians (child_id, guardian_user_id, position)
            VALUES ($1,$2,$3)`
		if _, err := tx.Exec(ctx, query, rows.Child.ID, guardianID, i); err != nil {
			return err
		}
	}

	for i, crisis := range rows.Crises {
		const query = `
            INSERT INTO crisis_records (id, child_id, occurred_at, intensity, description, trigger_identified, efficacy, position)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
		if _, err := tx.Exec(ctx, query,
			crisis.ID,
			rows.Child.ID,
			crisis.OccurredAt,
			crisis.Intensity,
			crisis.Description,
			crisis.Trigger,
			crisis.Efficacy,
			i,
		); err != nil {
			return err
		}
	}

	for i, request := range rows.Requests {
		const query = `
            INSERT INTO support_requests (id, child_id, requested_at, status,
                crisis_id, crisis_occurred_at, crisis_intensity, crisis_description, crisis_trigger, crisis_efficacy, position)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
		if _, err := tx.Exec(ctx, query,
			request.ID,
			rows.Child.ID,
			request.RequestedAt,
			request.Status,
			request.Crisis.ID,
			request.Crisis.OccurredAt,
			request.Crisis.Intensity,
			request.Crisis.Description,
			request.Crisis.Trigger,
			request.Crisis.Efficacy,
			i,
		); err != nil {
			return err
		}
	}

	for i, intervention := range rows.Interventions {
		const query = `
            INSERT INTO interventions (id, child_id, applied_at, strategy, applied_by, outcome, position)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`
		if _, err := tx.Exec(ctx, query,
			intervention.ID,
			rows.Child.ID,
			intervention.AppliedAt,
			intervention.Strategy,
			intervention.AppliedBy,
			intervention.Outcome,
			i,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *childRepository) ListBySchool(ctx context.Context, schoolID string) ([]domain.Child, error) {
	const query = `
        SELECT id, birth_date, severity, support_level, school_id
        FROM children WHERE school_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Child
	for rows.Next() {
		var row childRow
		if err := rows.Scan(
			&row.ID,
			&row.BirthDate,
			&row.Severity,
			&row.SupportLevel,
			&row.SchoolID,
		); err != nil {
			return nil, err
		}
		severity, err := domain.ParseSeverity(row.Severity)
		if err != nil {
			return nil, err
		}
		supportLevel, err := domain.ParseSupportLevel(row.SupportLevel)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.ChildFromState(
			row.ID,
			domain.BirthDateFromState(row.BirthDate),
			severity,
			supportLevel,
			row.SchoolID,
			nil,
		))
	}
	return result, rows.Err()
}

func (r *childRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM children WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
