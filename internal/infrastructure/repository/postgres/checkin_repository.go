package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/league-night/internal/domain/checkin"
)

type CheckInRepository struct {
	db *sqlx.DB
}

func NewCheckInRepository(db *sqlx.DB) *CheckInRepository {
	return &CheckInRepository{db: db}
}

func (r *CheckInRepository) GetActive(ctx context.Context, nightID, playerID string) (checkin.CheckIn, bool, error) {
	const query = `
SELECT id, public_id, night_public_id, player_public_id, active, checked_in_at, checked_out_at
FROM checkins
WHERE night_public_id = $1
  AND player_public_id = $2
  AND active`

	var row checkinTableModel
	if err := r.db.GetContext(ctx, &row, query, nightID, playerID); err != nil {
		if isNotFound(err) {
			return checkin.CheckIn{}, false, nil
		}
		return checkin.CheckIn{}, false, fmt.Errorf("get active check-in: %w", err)
	}

	return toCheckIn(row), true, nil
}

func (r *CheckInRepository) ListActive(ctx context.Context, nightID string) ([]checkin.CheckIn, error) {
	const query = `
SELECT id, public_id, night_public_id, player_public_id, active, checked_in_at, checked_out_at
FROM checkins
WHERE night_public_id = $1
  AND active
ORDER BY id`

	var rows []checkinTableModel
	if err := r.db.SelectContext(ctx, &rows, query, nightID); err != nil {
		return nil, fmt.Errorf("list active check-ins: %w", err)
	}

	out := make([]checkin.CheckIn, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCheckIn(row))
	}

	return out, nil
}

func (r *CheckInRepository) Create(ctx context.Context, item checkin.CheckIn) error {
	const query = `
INSERT INTO checkins (public_id, night_public_id, player_public_id, active, checked_in_at)
VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.NightID, item.PlayerID, item.Active, item.CheckedInAt,
	); err != nil {
		return fmt.Errorf("insert check-in: %w", err)
	}

	return nil
}

func (r *CheckInRepository) Update(ctx context.Context, item checkin.CheckIn) error {
	const query = `
UPDATE checkins
SET active = $2,
    checked_out_at = $3,
    updated_at = NOW()
WHERE public_id = $1`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Active, item.CheckedOutAt); err != nil {
		return fmt.Errorf("update check-in: %w", err)
	}

	return nil
}

func toCheckIn(row checkinTableModel) checkin.CheckIn {
	return checkin.CheckIn{
		ID:           row.PublicID,
		NightID:      row.NightPublicID,
		PlayerID:     row.PlayerID,
		Active:       row.Active,
		CheckedInAt:  row.CheckedInAt,
		CheckedOutAt: row.CheckedOutAt,
	}
}
