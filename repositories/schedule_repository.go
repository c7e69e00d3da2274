package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DucQuyen199/quanlybongda/models"
	"github.com/jmoiron/sqlx"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleConflict = errors.New("schedule id already exists")
)

type ListSchedulesFilter struct {
	Limit  int `db:"limit"`
	Offset int `db:"offset"`
}

type ScheduleRepository interface {
	GetByID(ctx context.Context, exec Executor, id string, forUpdate bool) (*models.Schedule, error)
	Exists(ctx context.Context, exec Executor, id string) (bool, error)
	Create(ctx context.Context, exec Executor, schedule *models.Schedule) error
	Update(ctx context.Context, exec Executor, schedule *models.Schedule) error
	Delete(ctx context.Context, exec Executor, id string) error
	GetView(ctx context.Context, exec Executor, id string) (*models.ScheduleView, error)
	ListViews(ctx context.Context, exec Executor, filter ListSchedulesFilter) ([]*models.ScheduleView, error)
	Count(ctx context.Context, exec Executor) (int, error)
}

type sqlScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) ScheduleRepository {
	return &sqlScheduleRepository{db: db}
}

func (r *sqlScheduleRepository) getExecutor(exec Executor) Executor {
	if exec != nil {
		return exec
	}
	return r.db
}

const scheduleViewSelect = `
		SELECT
			s.id, s.tournament_id, g.name AS tournament_name, s.match_id, s.scheduled_on,
			m.home_team_id, home.name AS home_team_name, home.logo_key AS home_team_logo_key,
			m.away_team_id, away.name AS away_team_name, away.logo_key AS away_team_logo_key,
			m.home_score, m.away_score, m.status, m.venue
		FROM schedules s
		LEFT JOIN tournaments g ON g.id = s.tournament_id
		LEFT JOIN matches m ON m.id = s.match_id
		LEFT JOIN teams home ON home.id = m.home_team_id
		LEFT JOIN teams away ON away.id = m.away_team_id`

func (r *sqlScheduleRepository) GetByID(ctx context.Context, exec Executor, id string, forUpdate bool) (*models.Schedule, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, match_id, scheduled_on
		FROM schedules
		WHERE id = :id` + lockClause(executor, forUpdate)

	schedule := &models.Schedule{}
	err := namedGet(ctx, executor, schedule, query, byID{ID: id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (r *sqlScheduleRepository) Exists(ctx context.Context, exec Executor, id string) (bool, error) {
	var count int
	err := namedGet(ctx, r.getExecutor(exec), &count, `SELECT COUNT(*) FROM schedules WHERE id = :id`, byID{ID: id})
	if err != nil {
		return false, fmt.Errorf("failed to check schedule %s: %w", id, err)
	}
	return count > 0, nil
}

func (r *sqlScheduleRepository) Create(ctx context.Context, exec Executor, schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (id, tournament_id, match_id, scheduled_on)
		VALUES (:id, :tournament_id, :match_id, :scheduled_on)`

	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(exec), query, schedule)
	return r.handleScheduleError(err)
}

func (r *sqlScheduleRepository) Update(ctx context.Context, exec Executor, schedule *models.Schedule) error {
	query := `
		UPDATE schedules SET
			tournament_id = :tournament_id,
			match_id = :match_id,
			scheduled_on = :scheduled_on
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, r.getExecutor(exec), query, schedule)
	if err != nil {
		return r.handleScheduleError(err)
	}
	return checkAffectedRows(result, ErrScheduleNotFound)
}

func (r *sqlScheduleRepository) Delete(ctx context.Context, exec Executor, id string) error {
	result, err := sqlx.NamedExecContext(ctx, r.getExecutor(exec), `DELETE FROM schedules WHERE id = :id`, byID{ID: id})
	if err != nil {
		return r.handleScheduleError(err)
	}
	return checkAffectedRows(result, ErrScheduleNotFound)
}

func (r *sqlScheduleRepository) GetView(ctx context.Context, exec Executor, id string) (*models.ScheduleView, error) {
	view := &models.ScheduleView{}
	err := namedGet(ctx, r.getExecutor(exec), view, scheduleViewSelect+`
		WHERE s.id = :id`, byID{ID: id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return view, nil
}

func (r *sqlScheduleRepository) ListViews(ctx context.Context, exec Executor, filter ListSchedulesFilter) ([]*models.ScheduleView, error) {
	query := scheduleViewSelect + `
		ORDER BY s.scheduled_on DESC, s.id ASC
		LIMIT :limit OFFSET :offset`

	views := make([]*models.ScheduleView, 0)
	if err := namedSelect(ctx, r.getExecutor(exec), &views, query, filter); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return views, nil
}

func (r *sqlScheduleRepository) Count(ctx context.Context, exec Executor) (int, error) {
	var total int
	if err := sqlx.GetContext(ctx, r.getExecutor(exec), &total, `SELECT COUNT(*) FROM schedules`); err != nil {
		return 0, fmt.Errorf("failed to count schedules: %w", err)
	}
	return total, nil
}

func (r *sqlScheduleRepository) handleScheduleError(err error) error {
	if err == nil {
		return nil
	}
	switch classifyConstraint(err) {
	case constraintForeignKey:
		return fmt.Errorf("%w: %v", ErrDanglingReference, err)
	case constraintUnique:
		return ErrScheduleConflict
	}
	return err
}
