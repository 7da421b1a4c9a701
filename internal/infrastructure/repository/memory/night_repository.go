package memory

import (
	"context"
	"sync"
	"time"

	"github.com/courtside/league-night/internal/domain/night"
)

type NightRepository struct {
	mu     sync.RWMutex
	items  map[string]night.Instance
	byDate map[string]string
}

func NewNightRepository() *NightRepository {
	return &NightRepository{
		items:  make(map[string]night.Instance),
		byDate: make(map[string]string),
	}
}

func (r *NightRepository) GetByID(_ context.Context, nightID string) (night.Instance, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, ok := r.items[nightID]
	if !ok {
		return night.Instance{}, false, nil
	}

	return cloneInstance(instance), true, nil
}

func (r *NightRepository) GetByDate(_ context.Context, date time.Time) (night.Instance, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDate[dateKey(date)]
	if !ok {
		return night.Instance{}, false, nil
	}

	return cloneInstance(r.items[id]), true, nil
}

func (r *NightRepository) Create(_ context.Context, instance night.Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[instance.ID] = cloneInstance(instance)
	r.byDate[dateKey(instance.Date)] = instance.ID
	return nil
}

func (r *NightRepository) Update(_ context.Context, instance night.Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[instance.ID] = cloneInstance(instance)
	return nil
}

func dateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

func cloneInstance(in night.Instance) night.Instance {
	copied := in
	copied.Courts = append([]night.Court(nil), in.Courts...)
	if in.CompletedAt != nil {
		at := *in.CompletedAt
		copied.CompletedAt = &at
	}
	return copied
}
