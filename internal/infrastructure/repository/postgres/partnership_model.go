package postgres

import "time"

type partnershipTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	NightPublicID string     `db:"night_public_id"`
	Player1ID     string     `db:"player1_public_id"`
	Player2ID     string     `db:"player2_public_id"`
	Active        bool       `db:"active"`
	ConfirmedAt   time.Time  `db:"confirmed_at"`
	DeactivatedAt *time.Time `db:"deactivated_at"`
}

type partnerRequestTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	NightPublicID string     `db:"night_public_id"`
	RequesterID   string     `db:"requester_public_id"`
	RequestedID   string     `db:"requested_public_id"`
	Status        string     `db:"status"`
	CreatedAt     time.Time  `db:"created_at"`
	ResolvedAt    *time.Time `db:"resolved_at"`
}
