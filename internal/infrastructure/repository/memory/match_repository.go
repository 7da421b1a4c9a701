package memory

import (
	"context"
	"sync"

	"github.com/courtside/league-night/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
	order []string
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{items: make(map[string]match.Match)}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return cloneMatch(item), true, nil
}

func (r *MatchRepository) ListActiveByNight(_ context.Context, nightID string) ([]match.Match, error) {
	return r.listByStatus(nightID, match.StatusActive), nil
}

func (r *MatchRepository) ListCompletedByNight(_ context.Context, nightID string) ([]match.Match, error) {
	return r.listByStatus(nightID, match.StatusCompleted), nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneMatch(item)
	r.order = append(r.order, item.ID)
	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneMatch(item)
	return nil
}

func (r *MatchRepository) listByStatus(nightID string, status match.Status) []match.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if item.NightID == nightID && item.Status == status {
			out = append(out, cloneMatch(item))
		}
	}
	return out
}

func cloneMatch(m match.Match) match.Match {
	copied := m
	if m.CompletedAt != nil {
		at := *m.CompletedAt
		copied.CompletedAt = &at
	}
	return copied
}
