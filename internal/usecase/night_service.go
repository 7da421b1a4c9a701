package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/league-night/internal/domain/night"
	idgen "github.com/courtside/league-night/internal/platform/id"
)

// NightService lazily materializes league night instances from the recurring
// template and keeps their status in step with the wall clock.
type NightService struct {
	nightRepo night.Repository
	template  night.Template
	idGen     idgen.Generator
	locks     *InstanceLocks
	now       func() time.Time
}

func NewNightService(
	nightRepo night.Repository,
	template night.Template,
	gen idgen.Generator,
	locks *InstanceLocks,
) *NightService {
	return &NightService{
		nightRepo: nightRepo,
		template:  template,
		idGen:     gen,
		locks:     locks,
		now:       time.Now,
	}
}

// GetOrCreateForDate returns the instance for the given date, creating it
// from the template when first requested. Dates that do not fall on the
// league's weekday have no night.
func (s *NightService) GetOrCreateForDate(ctx context.Context, date time.Time) (night.Instance, error) {
	ctx, span := startSpan(ctx, "usecase.NightService.GetOrCreateForDate")
	defer span.End()

	if date.IsZero() {
		return night.Instance{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if day.Weekday() != s.template.Weekday {
		return night.Instance{}, fmt.Errorf("%w: no league night scheduled on %s", ErrNotFound, day.Weekday())
	}

	unlock := s.locks.Lock("night-date:" + day.Format("2006-01-02"))
	defer unlock()

	existing, ok, err := s.nightRepo.GetByDate(ctx, day)
	if err != nil {
		return night.Instance{}, fmt.Errorf("get night by date: %w", err)
	}
	if ok {
		return s.refreshStatus(ctx, existing)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return night.Instance{}, fmt.Errorf("generate night id: %w", err)
	}

	instance := s.template.InstanceFor(newID, day, s.now())
	if err := instance.Validate(); err != nil {
		return night.Instance{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.nightRepo.Create(ctx, instance); err != nil {
		return night.Instance{}, fmt.Errorf("create night instance: %w", err)
	}

	return s.refreshStatus(ctx, instance)
}

func (s *NightService) GetByID(ctx context.Context, nightID string) (night.Instance, error) {
	ctx, span := startSpan(ctx, "usecase.NightService.GetByID")
	defer span.End()

	if nightID == "" {
		return night.Instance{}, fmt.Errorf("%w: night id is required", ErrInvalidInput)
	}

	instance, ok, err := s.nightRepo.GetByID(ctx, nightID)
	if err != nil {
		return night.Instance{}, fmt.Errorf("get night by id: %w", err)
	}
	if !ok {
		return night.Instance{}, fmt.Errorf("%w: night %s", ErrNotFound, nightID)
	}

	return s.refreshStatus(ctx, instance)
}

// refreshStatus flips scheduled nights to active once the wall clock passes
// the scheduled start. Completion only ever happens through admin action.
func (s *NightService) refreshStatus(ctx context.Context, instance night.Instance) (night.Instance, error) {
	if instance.Status != night.StatusScheduled {
		return instance, nil
	}
	if s.now().Before(instance.StartsAt) {
		return instance, nil
	}

	unlock := s.locks.Lock(instance.ID)
	defer unlock()

	current, ok, err := s.nightRepo.GetByID(ctx, instance.ID)
	if err != nil {
		return night.Instance{}, fmt.Errorf("reload night: %w", err)
	}
	if ok {
		instance = current
	}
	if instance.Status != night.StatusScheduled {
		return instance, nil
	}

	instance.Status = night.StatusActive
	if err := s.nightRepo.Update(ctx, instance); err != nil {
		return night.Instance{}, fmt.Errorf("activate night: %w", err)
	}

	return instance, nil
}
