package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DucQuyen199/quanlybongda/models"
	"github.com/jmoiron/sqlx"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	GetByID(ctx context.Context, exec Executor, id string) (*models.Tournament, error)
}

type sqlTournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) TournamentRepository {
	return &sqlTournamentRepository{db: db}
}

func (r *sqlTournamentRepository) getExecutor(exec Executor) Executor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlTournamentRepository) GetByID(ctx context.Context, exec Executor, id string) (*models.Tournament, error) {
	query := `
		SELECT id, name, starts_at, ends_at, location
		FROM tournaments
		WHERE id = :id`

	t := &models.Tournament{}
	err := namedGet(ctx, r.getExecutor(exec), t, query, byID{ID: id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}
