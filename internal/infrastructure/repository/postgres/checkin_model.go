package postgres

import "time"

type checkinTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	NightPublicID string     `db:"night_public_id"`
	PlayerID      string     `db:"player_public_id"`
	Active        bool       `db:"active"`
	CheckedInAt   time.Time  `db:"checked_in_at"`
	CheckedOutAt  *time.Time `db:"checked_out_at"`
}
