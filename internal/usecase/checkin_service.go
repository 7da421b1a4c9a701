package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/league-night/internal/domain/checkin"
	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/domain/night"
	"github.com/courtside/league-night/internal/domain/partnership"
	"github.com/courtside/league-night/internal/domain/player"
	idgen "github.com/courtside/league-night/internal/platform/id"
)

// CheckInService tracks who is present for a night. Checking out a partnered
// player also breaks the partnership: a pair cannot play with one member
// missing.
type CheckInService struct {
	nightRepo       night.Repository
	playerRepo      player.Repository
	checkinRepo     checkin.Repository
	partnershipRepo partnership.Repository
	allocator       *AllocatorService
	idGen           idgen.Generator
	locks           *InstanceLocks
	publisher       event.Publisher
	now             func() time.Time
}

func NewCheckInService(
	nightRepo night.Repository,
	playerRepo player.Repository,
	checkinRepo checkin.Repository,
	partnershipRepo partnership.Repository,
	allocator *AllocatorService,
	gen idgen.Generator,
	locks *InstanceLocks,
	publisher event.Publisher,
) *CheckInService {
	return &CheckInService{
		nightRepo:       nightRepo,
		playerRepo:      playerRepo,
		checkinRepo:     checkinRepo,
		partnershipRepo: partnershipRepo,
		allocator:       allocator,
		idGen:           gen,
		locks:           locks,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (s *CheckInService) CheckIn(ctx context.Context, nightID, playerID string) (checkin.CheckIn, error) {
	ctx, span := startSpan(ctx, "usecase.CheckInService.CheckIn")
	defer span.End()

	if nightID == "" || playerID == "" {
		return checkin.CheckIn{}, fmt.Errorf("%w: night id and player id are required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	if err := s.requireOpenNight(ctx, nightID); err != nil {
		return checkin.CheckIn{}, err
	}

	if _, ok, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return checkin.CheckIn{}, fmt.Errorf("get player: %w", err)
	} else if !ok {
		return checkin.CheckIn{}, fmt.Errorf("%w: player %s is not on the league roster", ErrNotFound, playerID)
	}

	if _, ok, err := s.checkinRepo.GetActive(ctx, nightID, playerID); err != nil {
		return checkin.CheckIn{}, fmt.Errorf("get active check-in: %w", err)
	} else if ok {
		return checkin.CheckIn{}, fmt.Errorf("%w: player %s is already checked in", ErrConflict, playerID)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return checkin.CheckIn{}, fmt.Errorf("generate check-in id: %w", err)
	}

	item := checkin.CheckIn{
		ID:          newID,
		NightID:     nightID,
		PlayerID:    playerID,
		Active:      true,
		CheckedInAt: s.now(),
	}
	if err := s.checkinRepo.Create(ctx, item); err != nil {
		return checkin.CheckIn{}, fmt.Errorf("create check-in: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeCheckInCreated,
		NightID: nightID,
		At:      s.now(),
		Payload: map[string]any{"player_id": playerID},
	})
	s.publishRosterChanged(ctx, nightID, playerID)

	return item, nil
}

// CheckOut deactivates the player's check-in. An active partnership is broken
// and both members return to the unpartnered pool; an in-flight match keeps
// running untouched.
func (s *CheckInService) CheckOut(ctx context.Context, nightID, playerID string) error {
	ctx, span := startSpan(ctx, "usecase.CheckInService.CheckOut")
	defer span.End()

	if nightID == "" || playerID == "" {
		return fmt.Errorf("%w: night id and player id are required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	item, ok, err := s.checkinRepo.GetActive(ctx, nightID, playerID)
	if err != nil {
		return fmt.Errorf("get active check-in: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: player %s is not checked in", ErrPrecondition, playerID)
	}

	checkedOutAt := s.now()
	item.Active = false
	item.CheckedOutAt = &checkedOutAt
	if err := s.checkinRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("deactivate check-in: %w", err)
	}

	if p, ok, err := s.partnershipRepo.GetActiveByPlayer(ctx, nightID, playerID); err != nil {
		return fmt.Errorf("get active partnership: %w", err)
	} else if ok {
		p.Active = false
		p.DeactivatedAt = &checkedOutAt
		if err := s.partnershipRepo.Update(ctx, p); err != nil {
			return fmt.Errorf("deactivate partnership: %w", err)
		}

		s.publisher.Publish(ctx, event.Event{
			Type:    event.TypePartnershipRemoved,
			NightID: nightID,
			At:      s.now(),
			Payload: map[string]any{
				"partnership_id": p.ID,
				"player1_id":     p.Player1ID,
				"player2_id":     p.Player2ID,
				"reason":         "checkout",
			},
		})
	}

	s.publishRosterChanged(ctx, nightID, playerID)

	if _, err := s.allocator.allocateLocked(ctx, nightID); err != nil {
		return fmt.Errorf("allocate after check-out: %w", err)
	}

	return nil
}

func (s *CheckInService) requireOpenNight(ctx context.Context, nightID string) error {
	instance, ok, err := s.nightRepo.GetByID(ctx, nightID)
	if err != nil {
		return fmt.Errorf("get night: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: night %s", ErrNotFound, nightID)
	}
	if instance.Status == night.StatusCompleted {
		return fmt.Errorf("%w: night %s is completed", ErrPrecondition, nightID)
	}

	return nil
}

func (s *CheckInService) publishRosterChanged(ctx context.Context, nightID, playerID string) {
	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeRosterChanged,
		NightID: nightID,
		At:      s.now(),
		Payload: map[string]any{"player_id": playerID},
	})
}
