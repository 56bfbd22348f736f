package models

import "time"

// OutfitSchedule assigns an outfit to a calendar date (day granularity).
// Date is carried as the raw YYYY-MM-DD text of the DATE column so that no
// timezone conversion can shift it across a day boundary. Nothing enforces
// one schedule per (user, date); the board picks one deterministically.
type OutfitSchedule struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	OutfitID  string    `db:"outfit_id" json:"outfit_id"`
	Date      string    `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HydratedSchedule is a schedule joined with its resolved outfit.
type HydratedSchedule struct {
	ID        string         `json:"id"`
	Date      string         `json:"date"`
	Outfit    HydratedOutfit `json:"outfit"`
	CreatedAt time.Time      `json:"created_at"`
}
