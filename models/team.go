package models

import "time"

type Team struct {
	ID          string     `json:"maDoi" db:"id"`
	Name        string     `json:"tenDoi" db:"name"`
	FoundedOn   *time.Time `json:"ngayThanhLap,omitempty" db:"founded_on"`
	PlayerCount *int       `json:"soLuongCauThu,omitempty" db:"player_count"`
	HomeGround  *string    `json:"sanNha,omitempty" db:"home_ground"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo,omitempty" db:"-"`
}
