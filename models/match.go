package models

import (
	"fmt"
	"strings"
	"time"
)

// MatchStatus соответствует колонке matches.status.
type MatchStatus string

const (
	MatchStatusNotStarted MatchStatus = "not_started"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusFinished   MatchStatus = "finished"
	MatchStatusPostponed  MatchStatus = "postponed"
	MatchStatusCancelled  MatchStatus = "cancelled"
)

// legacyMatchStatuses maps spellings the admin UI and older rows still send.
var legacyMatchStatuses = map[string]MatchStatus{
	"scheduled":   MatchStatusNotStarted,
	"not-started": MatchStatusNotStarted,
	"in-progress": MatchStatusInProgress,
	"live":        MatchStatusInProgress,
	"completed":   MatchStatusFinished,
	"canceled":    MatchStatusCancelled,
}

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusNotStarted, MatchStatusInProgress, MatchStatusFinished, MatchStatusPostponed, MatchStatusCancelled:
		return true
	}
	return false
}

// ParseMatchStatus normalizes case and legacy spellings.
func ParseMatchStatus(raw string) (MatchStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if s := MatchStatus(normalized); s.Valid() {
		return s, nil
	}
	if s, ok := legacyMatchStatuses[normalized]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown match status %q", raw)
}

// Match представляет матч (таблица matches).
type Match struct {
	ID           string      `json:"maTranDau" db:"id"`
	TournamentID string      `json:"maGiaiDau" db:"tournament_id"`
	HomeTeamID   string      `json:"maDoiNha" db:"home_team_id"`
	AwayTeamID   string      `json:"maDoiKhach" db:"away_team_id"`
	HomeScore    *int        `json:"banThangDoiNha" db:"home_score"`
	AwayScore    *int        `json:"banThangDoiKhach" db:"away_score"`
	PlayedAt     *time.Time  `json:"thoiGian,omitempty" db:"played_at"`
	Venue        *string     `json:"diaDiem,omitempty" db:"venue"`
	Status       MatchStatus `json:"trangThai" db:"status"`
}
