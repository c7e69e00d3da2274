package models

import "time"

// Tournament представляет турнир (GiaiDau в админке).
type Tournament struct {
	ID       string    `json:"maGiaiDau" db:"id"`
	Name     string    `json:"tenGiai" db:"name"`
	StartsAt time.Time `json:"thoiGianBatDau" db:"starts_at"`
	EndsAt   time.Time `json:"thoiGianKetThuc" db:"ends_at"`
	Location *string   `json:"diaDiem,omitempty" db:"location"`
}
