package postgres

import "time"

type nightTableModel struct {
	ID                int64      `db:"id"`
	PublicID          string     `db:"public_id"`
	NightDate         time.Time  `db:"night_date"`
	Status            string     `db:"status"`
	AutoAssignEnabled bool       `db:"auto_assign_enabled"`
	StartsAt          time.Time  `db:"starts_at"`
	CreatedAt         time.Time  `db:"created_at"`
	CompletedAt       *time.Time `db:"completed_at"`
}

type courtTableModel struct {
	NightPublicID string `db:"night_public_id"`
	CourtNumber   int    `db:"court_number"`
	Label         string `db:"label"`
}
