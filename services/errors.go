package services

import (
	"errors"
	"fmt"

	"github.com/DucQuyen199/quanlybongda/repositories"
)

// ErrorKind is the coarse failure class surfaced to API clients as errorKind.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "NotFound"
	KindConflict        ErrorKind = "Conflict"
	KindInvalidArgument ErrorKind = "InvalidArgument"
	KindInternal        ErrorKind = "Internal"
)

// Ошибки "не найдено"
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrHomeTeamNotFound   = errors.New("home team not found")
	ErrAwayTeamNotFound   = errors.New("away team not found")
	ErrScheduleNotFound   = errors.New("schedule not found")
)

// Конфликты
var (
	ErrDuplicateScheduleID = errors.New("schedule id already exists")
	ErrDuplicateMatchID    = errors.New("match id already exists")
)

// Невалидные входные данные
var (
	ErrScheduleIDRequired         = errors.New("schedule id is required")
	ErrTournamentIDRequired       = errors.New("tournament id is required")
	ErrDateRequired               = errors.New("schedule date is required")
	ErrMalformedDate              = errors.New("malformed date")
	ErrIDTooLong                  = errors.New("id is too long")
	ErrVenueTooLong               = errors.New("venue is too long")
	ErrSameTeam                   = errors.New("home team and away team must be different")
	ErrUnresolvableMatchReference = errors.New("match id does not exist and no teams were supplied to create it")
	ErrInvalidStatus              = errors.New("invalid match status")
	ErrInvalidScore               = errors.New("scores must be non-negative")
	ErrDanglingReference          = errors.New("a referenced tournament, team or match no longer exists")
	ErrMatchIDExhausted           = errors.New("could not generate a free match id")
)

// reasons maps each sentinel to its kind and the short reason code sent to clients.
var reasons = []struct {
	err    error
	kind   ErrorKind
	reason string
}{
	{ErrTournamentNotFound, KindNotFound, "Tournament"},
	{ErrHomeTeamNotFound, KindNotFound, "HomeTeam"},
	{ErrAwayTeamNotFound, KindNotFound, "AwayTeam"},
	{ErrScheduleNotFound, KindNotFound, "Schedule"},
	{ErrDuplicateScheduleID, KindConflict, "DuplicateScheduleId"},
	{ErrDuplicateMatchID, KindConflict, "DuplicateMatchId"},
	{ErrScheduleIDRequired, KindInvalidArgument, "ScheduleIdRequired"},
	{ErrTournamentIDRequired, KindInvalidArgument, "TournamentIdRequired"},
	{ErrDateRequired, KindInvalidArgument, "DateRequired"},
	{ErrMalformedDate, KindInvalidArgument, "MalformedDate"},
	{ErrIDTooLong, KindInvalidArgument, "IdTooLong"},
	{ErrVenueTooLong, KindInvalidArgument, "VenueTooLong"},
	{ErrSameTeam, KindInvalidArgument, "SameTeam"},
	{ErrUnresolvableMatchReference, KindInvalidArgument, "UnresolvableMatchReference"},
	{ErrInvalidStatus, KindInvalidArgument, "InvalidStatus"},
	{ErrInvalidScore, KindInvalidArgument, "InvalidScore"},
	{ErrDanglingReference, KindInvalidArgument, "DanglingReference"},
}

// KindOf classifies err. Anything unrecognized is Internal.
func KindOf(err error) ErrorKind {
	kind, _ := Classify(err)
	return kind
}

// Classify returns the kind and reason code for err.
func Classify(err error) (ErrorKind, string) {
	if err == nil {
		return "", ""
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.kind, r.reason
		}
	}
	return KindInternal, "Internal"
}

// translateRepositoryError maps persistence sentinels that can escape a write
// onto the service taxonomy. Unknown errors pass through untouched.
func translateRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrDanglingReference):
		return fmt.Errorf("%w: %w", ErrDanglingReference, err)
	case errors.Is(err, repositories.ErrTeamsNotDistinct):
		return ErrSameTeam
	case errors.Is(err, repositories.ErrScheduleConflict):
		return ErrDuplicateScheduleID
	case errors.Is(err, repositories.ErrMatchConflict):
		return ErrDuplicateMatchID
	case errors.Is(err, repositories.ErrScheduleNotFound):
		return ErrScheduleNotFound
	}
	return err
}
