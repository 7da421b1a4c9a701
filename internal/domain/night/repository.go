package night

import (
	"context"
	"time"
)

// Repository describes league-night-instance persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, nightID string) (Instance, bool, error)
	GetByDate(ctx context.Context, date time.Time) (Instance, bool, error)
	Create(ctx context.Context, instance Instance) error
	Update(ctx context.Context, instance Instance) error
}
