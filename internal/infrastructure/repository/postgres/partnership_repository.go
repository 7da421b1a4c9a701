package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/league-night/internal/domain/partnership"
)

type PartnershipRepository struct {
	db *sqlx.DB
}

func NewPartnershipRepository(db *sqlx.DB) *PartnershipRepository {
	return &PartnershipRepository{db: db}
}

func (r *PartnershipRepository) GetByID(ctx context.Context, partnershipID string) (partnership.Partnership, bool, error) {
	const query = `
SELECT id, public_id, night_public_id, player1_public_id, player2_public_id, active, confirmed_at, deactivated_at
FROM partnerships
WHERE public_id = $1`

	var row partnershipTableModel
	if err := r.db.GetContext(ctx, &row, query, partnershipID); err != nil {
		if isNotFound(err) {
			return partnership.Partnership{}, false, nil
		}
		return partnership.Partnership{}, false, fmt.Errorf("get partnership by id: %w", err)
	}

	return toPartnership(row), true, nil
}

func (r *PartnershipRepository) GetActiveByPlayer(ctx context.Context, nightID, playerID string) (partnership.Partnership, bool, error) {
	const query = `
SELECT id, public_id, night_public_id, player1_public_id, player2_public_id, active, confirmed_at, deactivated_at
FROM partnerships
WHERE night_public_id = $1
  AND active
  AND (player1_public_id = $2 OR player2_public_id = $2)`

	var row partnershipTableModel
	if err := r.db.GetContext(ctx, &row, query, nightID, playerID); err != nil {
		if isNotFound(err) {
			return partnership.Partnership{}, false, nil
		}
		return partnership.Partnership{}, false, fmt.Errorf("get active partnership by player: %w", err)
	}

	return toPartnership(row), true, nil
}

func (r *PartnershipRepository) ListActive(ctx context.Context, nightID string) ([]partnership.Partnership, error) {
	const query = `
SELECT id, public_id, night_public_id, player1_public_id, player2_public_id, active, confirmed_at, deactivated_at
FROM partnerships
WHERE night_public_id = $1
  AND active
ORDER BY id`

	var rows []partnershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, nightID); err != nil {
		return nil, fmt.Errorf("list active partnerships: %w", err)
	}

	out := make([]partnership.Partnership, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPartnership(row))
	}

	return out, nil
}

func (r *PartnershipRepository) Create(ctx context.Context, item partnership.Partnership) error {
	const query = `
INSERT INTO partnerships (public_id, night_public_id, player1_public_id, player2_public_id, active, confirmed_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.NightID, item.Player1ID, item.Player2ID, item.Active, item.ConfirmedAt,
	); err != nil {
		return fmt.Errorf("insert partnership: %w", err)
	}

	return nil
}

func (r *PartnershipRepository) Update(ctx context.Context, item partnership.Partnership) error {
	const query = `
UPDATE partnerships
SET active = $2,
    deactivated_at = $3,
    updated_at = NOW()
WHERE public_id = $1`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Active, item.DeactivatedAt); err != nil {
		return fmt.Errorf("update partnership: %w", err)
	}

	return nil
}

func toPartnership(row partnershipTableModel) partnership.Partnership {
	return partnership.Partnership{
		ID:            row.PublicID,
		NightID:       row.NightPublicID,
		Player1ID:     row.Player1ID,
		Player2ID:     row.Player2ID,
		Active:        row.Active,
		ConfirmedAt:   row.ConfirmedAt,
		DeactivatedAt: row.DeactivatedAt,
	}
}

type PartnerRequestRepository struct {
	db *sqlx.DB
}

func NewPartnerRequestRepository(db *sqlx.DB) *PartnerRequestRepository {
	return &PartnerRequestRepository{db: db}
}

func (r *PartnerRequestRepository) GetByID(ctx context.Context, requestID string) (partnership.Request, bool, error) {
	const query = `
SELECT id, public_id, night_public_id, requester_public_id, requested_public_id, status, created_at, resolved_at
FROM partner_requests
WHERE public_id = $1`

	var row partnerRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, requestID); err != nil {
		if isNotFound(err) {
			return partnership.Request{}, false, nil
		}
		return partnership.Request{}, false, fmt.Errorf("get partner request by id: %w", err)
	}

	return toRequest(row), true, nil
}

func (r *PartnerRequestRepository) GetPendingBetween(ctx context.Context, nightID, playerA, playerB string) (partnership.Request, bool, error) {
	const query = `
SELECT id, public_id, night_public_id, requester_public_id, requested_public_id, status, created_at, resolved_at
FROM partner_requests
WHERE night_public_id = $1
  AND status = 'pending'
  AND ((requester_public_id = $2 AND requested_public_id = $3)
    OR (requester_public_id = $3 AND requested_public_id = $2))
ORDER BY id
LIMIT 1`

	var row partnerRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, nightID, playerA, playerB); err != nil {
		if isNotFound(err) {
			return partnership.Request{}, false, nil
		}
		return partnership.Request{}, false, fmt.Errorf("get pending request between players: %w", err)
	}

	return toRequest(row), true, nil
}

func (r *PartnerRequestRepository) ListPendingByPlayer(ctx context.Context, nightID, playerID string) ([]partnership.Request, error) {
	const query = `
SELECT id, public_id, night_public_id, requester_public_id, requested_public_id, status, created_at, resolved_at
FROM partner_requests
WHERE night_public_id = $1
  AND status = 'pending'
  AND (requester_public_id = $2 OR requested_public_id = $2)
ORDER BY id`

	var rows []partnerRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, nightID, playerID); err != nil {
		return nil, fmt.Errorf("list pending requests by player: %w", err)
	}

	out := make([]partnership.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRequest(row))
	}

	return out, nil
}

func (r *PartnerRequestRepository) Create(ctx context.Context, item partnership.Request) error {
	const query = `
INSERT INTO partner_requests (public_id, night_public_id, requester_public_id, requested_public_id, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.NightID, item.RequesterID, item.RequestedID, string(item.Status), item.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert partner request: %w", err)
	}

	return nil
}

func (r *PartnerRequestRepository) Update(ctx context.Context, item partnership.Request) error {
	const query = `
UPDATE partner_requests
SET status = $2,
    resolved_at = $3,
    updated_at = NOW()
WHERE public_id = $1`

	if _, err := r.db.ExecContext(ctx, query, item.ID, string(item.Status), item.ResolvedAt); err != nil {
		return fmt.Errorf("update partner request: %w", err)
	}

	return nil
}

func toRequest(row partnerRequestTableModel) partnership.Request {
	return partnership.Request{
		ID:          row.PublicID,
		NightID:     row.NightPublicID,
		RequesterID: row.RequesterID,
		RequestedID: row.RequestedID,
		Status:      partnership.RequestStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		ResolvedAt:  row.ResolvedAt,
	}
}
