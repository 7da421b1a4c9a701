package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID                 int64          `db:"id"`
	PublicID           string         `db:"public_id"`
	NightPublicID      string         `db:"night_public_id"`
	Partnership1ID     string         `db:"partnership1_public_id"`
	Partnership2ID     string         `db:"partnership2_public_id"`
	CourtNumber        int            `db:"court_number"`
	Status             string         `db:"status"`
	ScoreStatus        string         `db:"score_status"`
	Team1Score         int            `db:"team1_score"`
	Team2Score         int            `db:"team2_score"`
	PendingTeam1Score  int            `db:"pending_team1_score"`
	PendingTeam2Score  int            `db:"pending_team2_score"`
	PendingSubmittedBy sql.NullString `db:"pending_submitted_by"`
	CreatedAt          time.Time      `db:"created_at"`
	CompletedAt        *time.Time     `db:"completed_at"`
}
