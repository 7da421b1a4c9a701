package memory

import (
	"context"
	"sync"

	"github.com/courtside/league-night/internal/domain/partnership"
)

type PartnershipRepository struct {
	mu    sync.RWMutex
	items map[string]partnership.Partnership
	order []string
}

func NewPartnershipRepository() *PartnershipRepository {
	return &PartnershipRepository{items: make(map[string]partnership.Partnership)}
}

func (r *PartnershipRepository) GetByID(_ context.Context, partnershipID string) (partnership.Partnership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[partnershipID]
	if !ok {
		return partnership.Partnership{}, false, nil
	}

	return clonePartnership(item), true, nil
}

func (r *PartnershipRepository) GetActiveByPlayer(_ context.Context, nightID, playerID string) (partnership.Partnership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		item := r.items[id]
		if item.Active && item.NightID == nightID && item.Has(playerID) {
			return clonePartnership(item), true, nil
		}
	}

	return partnership.Partnership{}, false, nil
}

// ListActive returns active partnerships in confirmation order.
func (r *PartnershipRepository) ListActive(_ context.Context, nightID string) ([]partnership.Partnership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]partnership.Partnership, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if item.Active && item.NightID == nightID {
			out = append(out, clonePartnership(item))
		}
	}
	return out, nil
}

func (r *PartnershipRepository) Create(_ context.Context, item partnership.Partnership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = clonePartnership(item)
	r.order = append(r.order, item.ID)
	return nil
}

func (r *PartnershipRepository) Update(_ context.Context, item partnership.Partnership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = clonePartnership(item)
	return nil
}

func clonePartnership(p partnership.Partnership) partnership.Partnership {
	copied := p
	if p.DeactivatedAt != nil {
		at := *p.DeactivatedAt
		copied.DeactivatedAt = &at
	}
	return copied
}

type PartnerRequestRepository struct {
	mu    sync.RWMutex
	items map[string]partnership.Request
	order []string
}

func NewPartnerRequestRepository() *PartnerRequestRepository {
	return &PartnerRequestRepository{items: make(map[string]partnership.Request)}
}

func (r *PartnerRequestRepository) GetByID(_ context.Context, requestID string) (partnership.Request, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[requestID]
	if !ok {
		return partnership.Request{}, false, nil
	}

	return cloneRequest(item), true, nil
}

func (r *PartnerRequestRepository) GetPendingBetween(_ context.Context, nightID, playerA, playerB string) (partnership.Request, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		item := r.items[id]
		if item.Status != partnership.RequestPending || item.NightID != nightID {
			continue
		}
		if (item.RequesterID == playerA && item.RequestedID == playerB) ||
			(item.RequesterID == playerB && item.RequestedID == playerA) {
			return cloneRequest(item), true, nil
		}
	}

	return partnership.Request{}, false, nil
}

func (r *PartnerRequestRepository) ListPendingByPlayer(_ context.Context, nightID, playerID string) ([]partnership.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]partnership.Request, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if item.Status == partnership.RequestPending && item.NightID == nightID && item.Involves(playerID) {
			out = append(out, cloneRequest(item))
		}
	}
	return out, nil
}

func (r *PartnerRequestRepository) Create(_ context.Context, item partnership.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneRequest(item)
	r.order = append(r.order, item.ID)
	return nil
}

func (r *PartnerRequestRepository) Update(_ context.Context, item partnership.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneRequest(item)
	return nil
}

func cloneRequest(req partnership.Request) partnership.Request {
	copied := req
	if req.ResolvedAt != nil {
		at := *req.ResolvedAt
		copied.ResolvedAt = &at
	}
	return copied
}
