package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/league-night/internal/domain/night"
)

type NightRepository struct {
	db *sqlx.DB
}

func NewNightRepository(db *sqlx.DB) *NightRepository {
	return &NightRepository{db: db}
}

func (r *NightRepository) GetByID(ctx context.Context, nightID string) (night.Instance, bool, error) {
	const query = `
SELECT id, public_id, night_date, status, auto_assign_enabled, starts_at, created_at, completed_at
FROM league_nights
WHERE public_id = $1`

	var row nightTableModel
	if err := r.db.GetContext(ctx, &row, query, nightID); err != nil {
		if isNotFound(err) {
			return night.Instance{}, false, nil
		}
		return night.Instance{}, false, fmt.Errorf("get night by id: %w", err)
	}

	return r.hydrate(ctx, row)
}

func (r *NightRepository) GetByDate(ctx context.Context, date time.Time) (night.Instance, bool, error) {
	const query = `
SELECT id, public_id, night_date, status, auto_assign_enabled, starts_at, created_at, completed_at
FROM league_nights
WHERE night_date = $1`

	var row nightTableModel
	if err := r.db.GetContext(ctx, &row, query, date.Format("2006-01-02")); err != nil {
		if isNotFound(err) {
			return night.Instance{}, false, nil
		}
		return night.Instance{}, false, fmt.Errorf("get night by date: %w", err)
	}

	return r.hydrate(ctx, row)
}

func (r *NightRepository) Create(ctx context.Context, instance night.Instance) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for night create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertQuery = `
INSERT INTO league_nights (public_id, night_date, status, auto_assign_enabled, starts_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := tx.ExecContext(ctx, insertQuery,
		instance.ID,
		instance.Date.Format("2006-01-02"),
		string(instance.Status),
		instance.AutoAssignEnabled,
		instance.StartsAt,
		instance.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert night: %w", err)
	}

	if err := replaceCourts(ctx, tx, instance.ID, instance.Courts); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit night create: %w", err)
	}

	return nil
}

func (r *NightRepository) Update(ctx context.Context, instance night.Instance) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for night update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateQuery = `
UPDATE league_nights
SET status = $2,
    auto_assign_enabled = $3,
    completed_at = $4,
    updated_at = NOW()
WHERE public_id = $1`

	if _, err := tx.ExecContext(ctx, updateQuery,
		instance.ID,
		string(instance.Status),
		instance.AutoAssignEnabled,
		instance.CompletedAt,
	); err != nil {
		return fmt.Errorf("update night: %w", err)
	}

	if err := replaceCourts(ctx, tx, instance.ID, instance.Courts); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit night update: %w", err)
	}

	return nil
}

func (r *NightRepository) hydrate(ctx context.Context, row nightTableModel) (night.Instance, bool, error) {
	const courtsQuery = `
SELECT night_public_id, court_number, label
FROM night_courts
WHERE night_public_id = $1
ORDER BY position`

	var courtRows []courtTableModel
	if err := r.db.SelectContext(ctx, &courtRows, courtsQuery, row.PublicID); err != nil {
		return night.Instance{}, false, fmt.Errorf("list night courts: %w", err)
	}

	courts := make([]night.Court, 0, len(courtRows))
	for _, c := range courtRows {
		courts = append(courts, night.Court{Number: c.CourtNumber, Label: c.Label})
	}

	return night.Instance{
		ID:                row.PublicID,
		Date:              row.NightDate,
		Status:            night.Status(row.Status),
		Courts:            courts,
		AutoAssignEnabled: row.AutoAssignEnabled,
		StartsAt:          row.StartsAt,
		CreatedAt:         row.CreatedAt,
		CompletedAt:       row.CompletedAt,
	}, true, nil
}

// replaceCourts rewrites the court roster wholesale. Rosters are a handful
// of rows, so diffing is not worth it.
func replaceCourts(ctx context.Context, tx *sqlx.Tx, nightID string, courts []night.Court) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM night_courts WHERE night_public_id = $1`, nightID); err != nil {
		return fmt.Errorf("clear night courts: %w", err)
	}

	const insertQuery = `
INSERT INTO night_courts (night_public_id, court_number, label, position)
VALUES ($1, $2, $3, $4)`

	for i, court := range courts {
		if _, err := tx.ExecContext(ctx, insertQuery, nightID, court.Number, court.Label, i); err != nil {
			return fmt.Errorf("insert night court: %w", err)
		}
	}

	return nil
}
