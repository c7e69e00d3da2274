package models

import "time"

// Schedule is a row of the schedules table (LichThiDau). MatchID stays nil
// until a match is linked.
type Schedule struct {
	ID           string    `json:"maLich" db:"id"`
	TournamentID string    `json:"maGiaiDau" db:"tournament_id"`
	MatchID      *string   `json:"maTran" db:"match_id"`
	Date         time.Time `json:"ngayThiDau" db:"scheduled_on"`
}

// ScheduleView is the joined read model returned after every upsert and by
// the detail/list endpoints.
type ScheduleView struct {
	ID             string       `json:"maLich" db:"id"`
	TournamentID   string       `json:"maGiaiDau" db:"tournament_id"`
	TournamentName *string      `json:"tenGiai" db:"tournament_name"`
	MatchID        *string      `json:"maTran" db:"match_id"`
	Date           time.Time    `json:"-" db:"scheduled_on"`
	HomeTeamID     *string      `json:"maDoiNha" db:"home_team_id"`
	HomeTeamName   *string      `json:"tenDoiNha" db:"home_team_name"`
	HomeTeamLogo   *string      `json:"-" db:"home_team_logo_key"`
	AwayTeamID     *string      `json:"maDoiKhach" db:"away_team_id"`
	AwayTeamName   *string      `json:"tenDoiKhach" db:"away_team_name"`
	AwayTeamLogo   *string      `json:"-" db:"away_team_logo_key"`
	HomeScore      *int         `json:"banThangDoiNha" db:"home_score"`
	AwayScore      *int         `json:"banThangDoiKhach" db:"away_score"`
	Status         *MatchStatus `json:"trangThai" db:"status"`
	Venue          *string      `json:"diaDiem,omitempty" db:"venue"`

	DateString      string  `json:"ngayThiDau" db:"-"`
	HomeTeamLogoURL *string `json:"logoDoiNha,omitempty" db:"-"`
	AwayTeamLogoURL *string `json:"logoDoiKhach,omitempty" db:"-"`
}

// DateLayout is the wire format of ngayThiDau.
const DateLayout = "2006-01-02"
