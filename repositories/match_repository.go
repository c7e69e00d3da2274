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
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchConflict = errors.New("match id already exists")
)

type MatchRepository interface {
	GetByID(ctx context.Context, exec Executor, id string, forUpdate bool) (*models.Match, error)
	Exists(ctx context.Context, exec Executor, id string) (bool, error)
	Create(ctx context.Context, exec Executor, match *models.Match) error
	Update(ctx context.Context, exec Executor, match *models.Match) error
}

type sqlMatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) MatchRepository {
	return &sqlMatchRepository{db: db}
}

func (r *sqlMatchRepository) getExecutor(exec Executor) Executor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlMatchRepository) GetByID(ctx context.Context, exec Executor, id string, forUpdate bool) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, tournament_id, home_team_id, away_team_id, home_score, away_score,
		       played_at, venue, status
		FROM matches
		WHERE id = :id` + lockClause(executor, forUpdate)

	match := &models.Match{}
	err := namedGet(ctx, executor, match, query, byID{ID: id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *sqlMatchRepository) Exists(ctx context.Context, exec Executor, id string) (bool, error) {
	var count int
	err := namedGet(ctx, r.getExecutor(exec), &count, `SELECT COUNT(*) FROM matches WHERE id = :id`, byID{ID: id})
	if err != nil {
		return false, fmt.Errorf("failed to check match %s: %w", id, err)
	}
	return count > 0, nil
}

func (r *sqlMatchRepository) Create(ctx context.Context, exec Executor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(id, tournament_id, home_team_id, away_team_id, home_score, away_score, played_at, venue, status)
		VALUES
			(:id, :tournament_id, :home_team_id, :away_team_id, :home_score, :away_score, :played_at, :venue, :status)`

	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(exec), query, match)
	return r.handleMatchError(err)
}

func (r *sqlMatchRepository) Update(ctx context.Context, exec Executor, match *models.Match) error {
	query := `
		UPDATE matches SET
			tournament_id = :tournament_id,
			home_team_id = :home_team_id,
			away_team_id = :away_team_id,
			home_score = :home_score,
			away_score = :away_score,
			played_at = :played_at,
			venue = :venue,
			status = :status
		WHERE id = :id`

	result, err := sqlx.NamedExecContext(ctx, r.getExecutor(exec), query, match)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *sqlMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	switch classifyConstraint(err) {
	case constraintForeignKey:
		return fmt.Errorf("%w: %v", ErrDanglingReference, err)
	case constraintUnique:
		return ErrMatchConflict
	case constraintCheck:
		return ErrTeamsNotDistinct
	}
	return err
}
