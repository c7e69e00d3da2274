package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/DucQuyen199/quanlybongda/repositories"
)

// ReferenceCheck lists the identifiers to resolve. Nil team ids are skipped.
type ReferenceCheck struct {
	TournamentID string
	HomeTeamID   *string
	AwayTeamID   *string
}

// ReferenceValidator confirms that tournament and team ids resolve to rows.
// It only reads, always on the executor it is handed.
type ReferenceValidator struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
}

func NewReferenceValidator(tournamentRepo repositories.TournamentRepository, teamRepo repositories.TeamRepository) *ReferenceValidator {
	return &ReferenceValidator{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
	}
}

func (v *ReferenceValidator) Validate(ctx context.Context, exec repositories.Executor, check ReferenceCheck) error {
	if check.HomeTeamID != nil && check.AwayTeamID != nil && *check.HomeTeamID == *check.AwayTeamID {
		return ErrSameTeam
	}

	if _, err := v.tournamentRepo.GetByID(ctx, exec, check.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return fmt.Errorf("%w: %s", ErrTournamentNotFound, check.TournamentID)
		}
		return fmt.Errorf("failed to load tournament %s: %w", check.TournamentID, err)
	}

	if err := v.checkTeam(ctx, exec, check.HomeTeamID, ErrHomeTeamNotFound); err != nil {
		return err
	}
	return v.checkTeam(ctx, exec, check.AwayTeamID, ErrAwayTeamNotFound)
}

func (v *ReferenceValidator) checkTeam(ctx context.Context, exec repositories.Executor, teamID *string, notFound error) error {
	if teamID == nil {
		return nil
	}
	if _, err := v.teamRepo.GetByID(ctx, exec, *teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return fmt.Errorf("%w: %s", notFound, *teamID)
		}
		return fmt.Errorf("failed to load team %s: %w", *teamID, err)
	}
	return nil
}
