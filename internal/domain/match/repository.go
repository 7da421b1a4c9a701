package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListActiveByNight(ctx context.Context, nightID string) ([]Match, error)
	ListCompletedByNight(ctx context.Context, nightID string) ([]Match, error)
	Create(ctx context.Context, item Match) error
	Update(ctx context.Context, item Match) error
}
