package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/league-night/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `id, public_id, night_public_id, partnership1_public_id, partnership2_public_id,
court_number, status, score_status, team1_score, team2_score,
pending_team1_score, pending_team2_score, pending_submitted_by, created_at, completed_at`

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query := `
SELECT ` + matchColumns + `
FROM matches
WHERE public_id = $1`

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, matchID); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	return toMatch(row), true, nil
}

func (r *MatchRepository) ListActiveByNight(ctx context.Context, nightID string) ([]match.Match, error) {
	return r.listByStatus(ctx, nightID, match.StatusActive)
}

func (r *MatchRepository) ListCompletedByNight(ctx context.Context, nightID string) ([]match.Match, error) {
	return r.listByStatus(ctx, nightID, match.StatusCompleted)
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	const query = `
INSERT INTO matches (public_id, night_public_id, partnership1_public_id, partnership2_public_id,
	court_number, status, score_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.NightID,
		item.Partnership1ID,
		item.Partnership2ID,
		item.CourtNumber,
		string(item.Status),
		string(item.ScoreStatus),
		item.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	const query = `
UPDATE matches
SET status = $2,
    score_status = $3,
    team1_score = $4,
    team2_score = $5,
    pending_team1_score = $6,
    pending_team2_score = $7,
    pending_submitted_by = $8,
    completed_at = $9,
    updated_at = NOW()
WHERE public_id = $1`

	var submittedBy sql.NullString
	if item.PendingSubmittedBy != "" {
		submittedBy = sql.NullString{String: item.PendingSubmittedBy, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query,
		item.ID,
		string(item.Status),
		string(item.ScoreStatus),
		item.Team1Score,
		item.Team2Score,
		item.PendingTeam1Score,
		item.PendingTeam2Score,
		submittedBy,
		item.CompletedAt,
	); err != nil {
		return fmt.Errorf("update match: %w", err)
	}

	return nil
}

func (r *MatchRepository) listByStatus(ctx context.Context, nightID string, status match.Status) ([]match.Match, error) {
	query := `
SELECT ` + matchColumns + `
FROM matches
WHERE night_public_id = $1
  AND status = $2
ORDER BY id`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, nightID, string(status)); err != nil {
		return nil, fmt.Errorf("list matches by status: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMatch(row))
	}

	return out, nil
}

func toMatch(row matchTableModel) match.Match {
	return match.Match{
		ID:                 row.PublicID,
		NightID:            row.NightPublicID,
		Partnership1ID:     row.Partnership1ID,
		Partnership2ID:     row.Partnership2ID,
		CourtNumber:        row.CourtNumber,
		Status:             match.Status(row.Status),
		ScoreStatus:        match.ScoreStatus(row.ScoreStatus),
		Team1Score:         row.Team1Score,
		Team2Score:         row.Team2Score,
		PendingTeam1Score:  row.PendingTeam1Score,
		PendingTeam2Score:  row.PendingTeam2Score,
		PendingSubmittedBy: row.PendingSubmittedBy.String,
		CreatedAt:          row.CreatedAt,
		CompletedAt:        row.CompletedAt,
	}
}
