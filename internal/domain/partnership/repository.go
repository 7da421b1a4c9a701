package partnership

import "context"

// Repository describes confirmed-partnership persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, partnershipID string) (Partnership, bool, error)
	GetActiveByPlayer(ctx context.Context, nightID, playerID string) (Partnership, bool, error)
	ListActive(ctx context.Context, nightID string) ([]Partnership, error)
	Create(ctx context.Context, item Partnership) error
	Update(ctx context.Context, item Partnership) error
}

// RequestRepository describes partner-request persistence needs from use cases.
type RequestRepository interface {
	GetByID(ctx context.Context, requestID string) (Request, bool, error)
	// GetPendingBetween matches either direction of the pair.
	GetPendingBetween(ctx context.Context, nightID, playerA, playerB string) (Request, bool, error)
	ListPendingByPlayer(ctx context.Context, nightID, playerID string) ([]Request, error)
	Create(ctx context.Context, item Request) error
	Update(ctx context.Context, item Request) error
}
