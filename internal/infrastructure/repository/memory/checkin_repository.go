package memory

import (
	"context"
	"sync"

	"github.com/courtside/league-night/internal/domain/checkin"
)

type CheckInRepository struct {
	mu    sync.RWMutex
	items map[string]checkin.CheckIn
	order []string
}

func NewCheckInRepository() *CheckInRepository {
	return &CheckInRepository{items: make(map[string]checkin.CheckIn)}
}

func (r *CheckInRepository) GetActive(_ context.Context, nightID, playerID string) (checkin.CheckIn, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		item := r.items[id]
		if item.Active && item.NightID == nightID && item.PlayerID == playerID {
			return cloneCheckIn(item), true, nil
		}
	}

	return checkin.CheckIn{}, false, nil
}

func (r *CheckInRepository) ListActive(_ context.Context, nightID string) ([]checkin.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]checkin.CheckIn, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if item.Active && item.NightID == nightID {
			out = append(out, cloneCheckIn(item))
		}
	}
	return out, nil
}

func (r *CheckInRepository) Create(_ context.Context, item checkin.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneCheckIn(item)
	r.order = append(r.order, item.ID)
	return nil
}

func (r *CheckInRepository) Update(_ context.Context, item checkin.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneCheckIn(item)
	return nil
}

func cloneCheckIn(c checkin.CheckIn) checkin.CheckIn {
	copied := c
	if c.CheckedOutAt != nil {
		at := *c.CheckedOutAt
		copied.CheckedOutAt = &at
	}
	return copied
}
