package checkin

import "context"

// Repository describes check-in persistence needs from use cases.
// At most one active check-in may exist per (night, player) pair.
type Repository interface {
	GetActive(ctx context.Context, nightID, playerID string) (CheckIn, bool, error)
	ListActive(ctx context.Context, nightID string) ([]CheckIn, error)
	Create(ctx context.Context, item CheckIn) error
	Update(ctx context.Context, item CheckIn) error
}
