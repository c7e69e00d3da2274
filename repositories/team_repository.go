package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DucQuyen199/quanlybongda/models"
	"github.com/jmoiron/sqlx"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, exec Executor, id string) (*models.Team, error)
}

type sqlTeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) TeamRepository {
	return &sqlTeamRepository{db: db}
}

func (r *sqlTeamRepository) getExecutor(exec Executor) Executor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlTeamRepository) GetByID(ctx context.Context, exec Executor, id string) (*models.Team, error) {
	query := `
		SELECT id, name, founded_on, player_count, home_ground, logo_key
		FROM teams
		WHERE id = :id`

	team := &models.Team{}
	err := namedGet(ctx, r.getExecutor(exec), team, query, byID{ID: id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}
