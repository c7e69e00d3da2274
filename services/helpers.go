package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DucQuyen199/quanlybongda/models"
	"github.com/DucQuyen199/quanlybongda/storage"
	"github.com/jmoiron/sqlx"
)

// runInTx runs fn inside one transaction. Any error from fn, or a panic, rolls
// the transaction back; the original error is returned unchanged.
func runInTx(ctx context.Context, db *sqlx.DB, logger *slog.Logger, fn func(tx *sqlx.Tx) error) (txErr error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorContext(ctx, "rollback failed",
					slog.Any("error", rbErr),
					slog.Any("original_error", txErr))
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(tx)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optionalString trims the value and treats a blank string as absent; the
// admin UI sends "" for untouched inputs.
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

var acceptedDateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseScheduleDate returns the calendar day as written by the caller, at
// midnight UTC, and the instant itself in UTC for the match kickoff.
func parseScheduleDate(raw string) (day time.Time, instant time.Time, err error) {
	for _, layout := range acceptedDateLayouts {
		if t, perr := time.Parse(layout, raw); perr == nil {
			day = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return day, t.UTC(), nil
		}
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrMalformedDate, raw)
}

func parseStatus(raw *string) (*models.MatchStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := models.ParseMatchStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	return &status, nil
}

// populateScheduleViewFunc fills the derived fields of a view: the formatted
// date and team logo URLs.
func populateScheduleViewFunc(ctx context.Context, view *models.ScheduleView, logos storage.LogoResolver, logger *slog.Logger) {
	if view == nil {
		return
	}
	view.DateString = view.Date.Format(models.DateLayout)
	if logos == nil {
		return
	}
	view.HomeTeamLogoURL = resolveLogoURL(ctx, view.HomeTeamLogo, logos, logger)
	view.AwayTeamLogoURL = resolveLogoURL(ctx, view.AwayTeamLogo, logos, logger)
}

func resolveLogoURL(ctx context.Context, key *string, logos storage.LogoResolver, logger *slog.Logger) *string {
	if key == nil || *key == "" {
		return nil
	}
	url, err := logos.LogoURL(ctx, *key)
	if err != nil {
		logger.WarnContext(ctx, "failed to resolve team logo URL", slog.String("logo_key", *key), slog.Any("error", err))
		return nil
	}
	if url == "" {
		return nil
	}
	return &url
}
