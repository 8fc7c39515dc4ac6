package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crisis-support-service/internal/domain"
)

// EventRepository manages persistence for calendar events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) error
	Update(ctx context.Context, event *domain.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	ListByChild(ctx context.Context, childID string, from, to *time.Time) ([]domain.CalendarEvent, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository constructs repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	const query = `
        INSERT INTO calendar_events (id, child_id, title, starts_at, ends_at, risk, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.ChildID,
		event.Title,
		event.StartsAt,
		event.EndsAt,
		event.Risk,
		event.Status,
	)
	return err
}

func (r *eventRepository) Update(ctx context.Context, event *domain.CalendarEvent) error {
	const query = `
        UPDATE calendar_events
        SET title=$1, starts_at=$2, ends_at=$3, risk=$4, status=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		event.Title,
		event.StartsAt,
		event.EndsAt,
		event.Risk,
		event.Status,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	const query = `
        SELECT id, child_id, title, starts_at, ends_at, risk, status
        FROM calendar_events WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	event, err := scanEvent(row)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) ListByChild(ctx context.Context, childID string, from, to *time.Time) ([]domain.CalendarEvent, error) {
	query := `
        SELECT id, child_id, title, starts_at, ends_at, risk, status
        FROM calendar_events WHERE child_id=$1`
	args := []any{childID}

	if from != nil {
		args = append(args, *from)
		query += " AND starts_at >= $2"
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += " AND starts_at < $3"
		} else {
			query += " AND starts_at < $2"
		}
	}
	query += " ORDER BY starts_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CalendarEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func scanEvent(row pgx.Row) (domain.CalendarEvent, error) {
	var (
		event  domain.CalendarEvent
		risk   string
		status string
	)
	if err := row.Scan(
		&event.ID,
		&event.ChildID,
		&event.Title,
		&event.StartsAt,
		&event.EndsAt,
		&risk,
		&status,
	); err != nil {
		return domain.CalendarEvent{}, err
	}
	parsedRisk, err := domain.ParseRiskLevel(risk)
	if err != nil {
		return domain.CalendarEvent{}, err
	}
	parsedStatus, err := domain.ParseEventStatus(status)
	if err != nil {
		return domain.CalendarEvent{}, err
	}
	event.Risk = parsedRisk
	event.Status = parsedStatus
	return event, nil
}
