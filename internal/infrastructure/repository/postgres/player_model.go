package postgres

import "time"

type playerTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	DisplayName string    `db:"display_name"`
	SkillLevel  string    `db:"skill_level"`
	CreatedAt   time.Time `db:"created_at"`
}
