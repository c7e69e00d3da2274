package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DucQuyen199/quanlybongda/models"
	"github.com/DucQuyen199/quanlybongda/repositories"
)

const (
	matchIDPrefix      = "TRAN"
	matchIDSuffixSpace = 1_000_000
	maxMatchIDAttempts = 50
)

// MatchUpsertInput carries the match side of a schedule upsert. Pointer fields
// are optional; a nil field leaves an existing match's value untouched.
type MatchUpsertInput struct {
	MatchID    *string
	HomeTeamID *string
	AwayTeamID *string
	HomeScore  *int
	AwayScore  *int
	Status     *models.MatchStatus
	Venue      *string

	// Effective schedule values. New matches always take them; an existing
	// match only when the caller sent them explicitly.
	TournamentID       string
	PlayedAt           time.Time
	TournamentSupplied bool
	DateSupplied       bool
}

func (in MatchUpsertInput) hasBothTeams() bool {
	return in.HomeTeamID != nil && in.AwayTeamID != nil
}

// MatchUpsertEngine decides whether a schedule creates, reuses or updates a
// match. It writes through the executor it is given and never ends the
// transaction itself.
type MatchUpsertEngine struct {
	matchRepo repositories.MatchRepository
	now       func() time.Time
	logger    *slog.Logger
}

func NewMatchUpsertEngine(matchRepo repositories.MatchRepository, logger *slog.Logger) *MatchUpsertEngine {
	return &MatchUpsertEngine{
		matchRepo: matchRepo,
		now:       time.Now,
		logger:    logger,
	}
}

// Upsert returns the id of the match the schedule should point at, or nil when
// the input does not describe a match.
func (e *MatchUpsertEngine) Upsert(ctx context.Context, exec repositories.Executor, in MatchUpsertInput) (*string, error) {
	if err := validateMatchFields(in); err != nil {
		return nil, err
	}

	if in.MatchID != nil {
		existing, err := e.matchRepo.GetByID(ctx, exec, *in.MatchID, true)
		switch {
		case err == nil:
			if err := e.update(ctx, exec, existing, in); err != nil {
				return nil, err
			}
			return &existing.ID, nil
		case errors.Is(err, repositories.ErrMatchNotFound):
			if !in.hasBothTeams() {
				return nil, fmt.Errorf("%w: %s", ErrUnresolvableMatchReference, *in.MatchID)
			}
			return e.create(ctx, exec, *in.MatchID, in)
		default:
			return nil, fmt.Errorf("failed to load match %s: %w", *in.MatchID, err)
		}
	}

	if !in.hasBothTeams() {
		return nil, nil
	}

	id, err := e.nextMatchID(ctx, exec)
	if err != nil {
		return nil, err
	}
	return e.create(ctx, exec, id, in)
}

func (e *MatchUpsertEngine) create(ctx context.Context, exec repositories.Executor, id string, in MatchUpsertInput) (*string, error) {
	status := models.MatchStatusNotStarted
	if in.Status != nil {
		status = *in.Status
	}
	playedAt := in.PlayedAt

	match := &models.Match{
		ID:           id,
		TournamentID: in.TournamentID,
		HomeTeamID:   *in.HomeTeamID,
		AwayTeamID:   *in.AwayTeamID,
		HomeScore:    in.HomeScore,
		AwayScore:    in.AwayScore,
		PlayedAt:     &playedAt,
		Venue:        in.Venue,
		Status:       status,
	}
	if err := e.matchRepo.Create(ctx, exec, match); err != nil {
		return nil, translateRepositoryError(err)
	}

	e.logger.DebugContext(ctx, "match created",
		slog.String("match_id", id),
		slog.String("home_team_id", match.HomeTeamID),
		slog.String("away_team_id", match.AwayTeamID))
	return &match.ID, nil
}

// update applies only the supplied fields. A call that supplies nothing
// writes nothing.
func (e *MatchUpsertEngine) update(ctx context.Context, exec repositories.Executor, match *models.Match, in MatchUpsertInput) error {
	changed := false
	if in.TournamentSupplied {
		match.TournamentID = in.TournamentID
		changed = true
	}
	if in.HomeTeamID != nil {
		match.HomeTeamID = *in.HomeTeamID
		changed = true
	}
	if in.AwayTeamID != nil {
		match.AwayTeamID = *in.AwayTeamID
		changed = true
	}
	if in.DateSupplied {
		playedAt := in.PlayedAt
		match.PlayedAt = &playedAt
		changed = true
	}
	if in.HomeScore != nil {
		match.HomeScore = in.HomeScore
		changed = true
	}
	if in.AwayScore != nil {
		match.AwayScore = in.AwayScore
		changed = true
	}
	if in.Status != nil {
		match.Status = *in.Status
		changed = true
	}
	if in.Venue != nil {
		match.Venue = in.Venue
		changed = true
	}

	if !changed {
		return nil
	}
	if match.HomeTeamID == match.AwayTeamID {
		return ErrSameTeam
	}

	if err := e.matchRepo.Update(ctx, exec, match); err != nil {
		return translateRepositoryError(err)
	}
	e.logger.DebugContext(ctx, "match updated", slog.String("match_id", match.ID))
	return nil
}

// nextMatchID derives TRANxxxxxx from the clock and steps forward past ids
// already taken in this transaction's view.
func (e *MatchUpsertEngine) nextMatchID(ctx context.Context, exec repositories.Executor) (string, error) {
	suffix := e.now().UnixMilli() % matchIDSuffixSpace
	for attempt := 0; attempt < maxMatchIDAttempts; attempt++ {
		candidate := fmt.Sprintf("%s%06d", matchIDPrefix, (suffix+int64(attempt))%matchIDSuffixSpace)
		taken, err := e.matchRepo.Exists(ctx, exec, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrMatchIDExhausted
}

func validateMatchFields(in MatchUpsertInput) error {
	if in.HomeScore != nil && *in.HomeScore < 0 {
		return ErrInvalidScore
	}
	if in.AwayScore != nil && *in.AwayScore < 0 {
		return ErrInvalidScore
	}
	if in.Status != nil && !in.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *in.Status)
	}
	return nil
}
