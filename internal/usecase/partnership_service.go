package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/league-night/internal/domain/checkin"
	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/domain/partnership"
	idgen "github.com/courtside/league-night/internal/platform/id"
)

// PartnershipService runs the request/accept/reject handshake that produces
// confirmed partnerships for a night.
type PartnershipService struct {
	checkinRepo     checkin.Repository
	partnershipRepo partnership.Repository
	requestRepo     partnership.RequestRepository
	allocator       *AllocatorService
	idGen           idgen.Generator
	locks           *InstanceLocks
	publisher       event.Publisher
	now             func() time.Time
}

func NewPartnershipService(
	checkinRepo checkin.Repository,
	partnershipRepo partnership.Repository,
	requestRepo partnership.RequestRepository,
	allocator *AllocatorService,
	gen idgen.Generator,
	locks *InstanceLocks,
	publisher event.Publisher,
) *PartnershipService {
	return &PartnershipService{
		checkinRepo:     checkinRepo,
		partnershipRepo: partnershipRepo,
		requestRepo:     requestRepo,
		allocator:       allocator,
		idGen:           gen,
		locks:           locks,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (s *PartnershipService) SendRequest(ctx context.Context, nightID, requesterID, requestedID string) (partnership.Request, error) {
	ctx, span := startSpan(ctx, "usecase.PartnershipService.SendRequest")
	defer span.End()

	if nightID == "" || requesterID == "" || requestedID == "" {
		return partnership.Request{}, fmt.Errorf("%w: night id and both player ids are required", ErrInvalidInput)
	}
	if requesterID == requestedID {
		return partnership.Request{}, fmt.Errorf("%w: cannot request yourself as partner", ErrInvalidInput)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	if err := s.requireEligible(ctx, nightID, requesterID); err != nil {
		return partnership.Request{}, err
	}
	if err := s.requireEligible(ctx, nightID, requestedID); err != nil {
		return partnership.Request{}, err
	}

	if _, ok, err := s.requestRepo.GetPendingBetween(ctx, nightID, requesterID, requestedID); err != nil {
		return partnership.Request{}, fmt.Errorf("get pending request: %w", err)
	} else if ok {
		return partnership.Request{}, fmt.Errorf("%w: a pending request already exists between these players", ErrConflict)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return partnership.Request{}, fmt.Errorf("generate request id: %w", err)
	}

	req := partnership.Request{
		ID:          newID,
		NightID:     nightID,
		RequesterID: requesterID,
		RequestedID: requestedID,
		Status:      partnership.RequestPending,
		CreatedAt:   s.now(),
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return partnership.Request{}, fmt.Errorf("create request: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypePartnershipRequested,
		NightID: nightID,
		At:      s.now(),
		Payload: map[string]any{
			"request_id":   req.ID,
			"requester_id": requesterID,
			"requested_id": requestedID,
		},
	})

	return req, nil
}

// AcceptRequest confirms the partnership. Eligibility is re-checked at accept
// time, not just at send time: either side may have partnered or checked out
// since the request was created.
func (s *PartnershipService) AcceptRequest(ctx context.Context, nightID, requestID, acceptorID string) (partnership.Partnership, error) {
	ctx, span := startSpan(ctx, "usecase.PartnershipService.AcceptRequest")
	defer span.End()

	if nightID == "" || requestID == "" || acceptorID == "" {
		return partnership.Partnership{}, fmt.Errorf("%w: night id, request id and acceptor id are required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	req, err := s.pendingRequest(ctx, nightID, requestID)
	if err != nil {
		return partnership.Partnership{}, err
	}
	if req.RequestedID != acceptorID {
		return partnership.Partnership{}, fmt.Errorf("%w: only the requested player may accept", ErrUnauthorized)
	}

	if err := s.requireEligible(ctx, nightID, req.RequesterID); err != nil {
		return partnership.Partnership{}, err
	}
	if err := s.requireEligible(ctx, nightID, req.RequestedID); err != nil {
		return partnership.Partnership{}, err
	}

	resolvedAt := s.now()
	req.Status = partnership.RequestAccepted
	req.ResolvedAt = &resolvedAt
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return partnership.Partnership{}, fmt.Errorf("accept request: %w", err)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return partnership.Partnership{}, fmt.Errorf("generate partnership id: %w", err)
	}

	p := partnership.Partnership{
		ID:          newID,
		NightID:     nightID,
		Player1ID:   req.RequesterID,
		Player2ID:   req.RequestedID,
		Active:      true,
		ConfirmedAt: resolvedAt,
	}
	if err := s.partnershipRepo.Create(ctx, p); err != nil {
		return partnership.Partnership{}, fmt.Errorf("create partnership: %w", err)
	}

	// Both players are now taken: every other pending request naming either
	// of them dies with this acceptance.
	if err := s.rejectPendingInvolving(ctx, nightID, req.RequesterID, req.ID); err != nil {
		return partnership.Partnership{}, err
	}
	if err := s.rejectPendingInvolving(ctx, nightID, req.RequestedID, req.ID); err != nil {
		return partnership.Partnership{}, err
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypePartnershipConfirmed,
		NightID: nightID,
		At:      s.now(),
		Payload: map[string]any{
			"partnership_id": p.ID,
			"player1_id":     p.Player1ID,
			"player2_id":     p.Player2ID,
		},
	})

	if _, err := s.allocator.allocateLocked(ctx, nightID); err != nil {
		return partnership.Partnership{}, fmt.Errorf("allocate after acceptance: %w", err)
	}

	return p, nil
}

func (s *PartnershipService) RejectRequest(ctx context.Context, nightID, requestID, rejecterID string) error {
	ctx, span := startSpan(ctx, "usecase.PartnershipService.RejectRequest")
	defer span.End()

	if nightID == "" || requestID == "" || rejecterID == "" {
		return fmt.Errorf("%w: night id, request id and rejecter id are required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	req, err := s.pendingRequest(ctx, nightID, requestID)
	if err != nil {
		return err
	}
	if !req.Involves(rejecterID) {
		return fmt.Errorf("%w: only a participant may reject the request", ErrUnauthorized)
	}

	resolvedAt := s.now()
	req.Status = partnership.RequestRejected
	req.ResolvedAt = &resolvedAt
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return fmt.Errorf("reject request: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypePartnershipRejected,
		NightID: nightID,
		At:      s.now(),
		Payload: map[string]any{"request_id": req.ID},
	})

	return nil
}

// RemovePartnership dissolves the caller's partnership and returns both
// members to the unpartnered pool.
func (s *PartnershipService) RemovePartnership(ctx context.Context, nightID, playerID string) error {
	ctx, span := startSpan(ctx, "usecase.PartnershipService.RemovePartnership")
	defer span.End()

	if nightID == "" || playerID == "" {
		return fmt.Errorf("%w: night id and player id are required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	p, ok, err := s.partnershipRepo.GetActiveByPlayer(ctx, nightID, playerID)
	if err != nil {
		return fmt.Errorf("get active partnership: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: player %s has no active partnership", ErrPrecondition, playerID)
	}

	deactivatedAt := s.now()
	p.Active = false
	p.DeactivatedAt = &deactivatedAt
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
			"reason":         "removed",
		},
	})

	if _, err := s.allocator.allocateLocked(ctx, nightID); err != nil {
		return fmt.Errorf("allocate after removal: %w", err)
	}

	return nil
}

// createConfirmedLocked creates a confirmed partnership without a handshake.
// Used by the admin override path; the caller must hold the instance lock.
// The night-roster rules still apply.
func (s *PartnershipService) createConfirmedLocked(ctx context.Context, nightID, player1ID, player2ID string) (partnership.Partnership, error) {
	if player1ID == player2ID {
		return partnership.Partnership{}, fmt.Errorf("%w: cannot pair a player with themselves", ErrInvalidInput)
	}

	if err := s.requireEligible(ctx, nightID, player1ID); err != nil {
		return partnership.Partnership{}, err
	}
	if err := s.requireEligible(ctx, nightID, player2ID); err != nil {
		return partnership.Partnership{}, err
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return partnership.Partnership{}, fmt.Errorf("generate partnership id: %w", err)
	}

	p := partnership.Partnership{
		ID:          newID,
		NightID:     nightID,
		Player1ID:   player1ID,
		Player2ID:   player2ID,
		Active:      true,
		ConfirmedAt: s.now(),
	}
	if err := s.partnershipRepo.Create(ctx, p); err != nil {
		return partnership.Partnership{}, fmt.Errorf("create partnership: %w", err)
	}

	if err := s.rejectPendingInvolving(ctx, nightID, player1ID, ""); err != nil {
		return partnership.Partnership{}, err
	}
	if err := s.rejectPendingInvolving(ctx, nightID, player2ID, ""); err != nil {
		return partnership.Partnership{}, err
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypePartnershipConfirmed,
		NightID: nightID,
		At:      s.now(),
		Payload: map[string]any{
			"partnership_id": p.ID,
			"player1_id":     p.Player1ID,
			"player2_id":     p.Player2ID,
		},
	})

	if _, err := s.allocator.allocateLocked(ctx, nightID); err != nil {
		return partnership.Partnership{}, fmt.Errorf("allocate after partnership create: %w", err)
	}

	return p, nil
}

func (s *PartnershipService) pendingRequest(ctx context.Context, nightID, requestID string) (partnership.Request, error) {
	req, ok, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return partnership.Request{}, fmt.Errorf("get request: %w", err)
	}
	if !ok || req.NightID != nightID {
		return partnership.Request{}, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
	}
	if req.Status != partnership.RequestPending {
		return partnership.Request{}, fmt.Errorf("%w: request %s is already %s", ErrPrecondition, requestID, req.Status)
	}

	return req, nil
}

// requireEligible enforces the night-roster rule: the player must hold an
// active check-in and no active partnership.
func (s *PartnershipService) requireEligible(ctx context.Context, nightID, playerID string) error {
	if _, ok, err := s.checkinRepo.GetActive(ctx, nightID, playerID); err != nil {
		return fmt.Errorf("get active check-in: %w", err)
	} else if !ok {
		return fmt.Errorf("%w: player %s is not checked in tonight", ErrConflict, playerID)
	}

	if _, ok, err := s.partnershipRepo.GetActiveByPlayer(ctx, nightID, playerID); err != nil {
		return fmt.Errorf("get active partnership: %w", err)
	} else if ok {
		return fmt.Errorf("%w: player %s already has a partner", ErrConflict, playerID)
	}

	return nil
}

func (s *PartnershipService) rejectPendingInvolving(ctx context.Context, nightID, playerID, exceptRequestID string) error {
	pending, err := s.requestRepo.ListPendingByPlayer(ctx, nightID, playerID)
	if err != nil {
		return fmt.Errorf("list pending requests: %w", err)
	}

	resolvedAt := s.now()
	for _, other := range pending {
		if other.ID == exceptRequestID {
			continue
		}
		other.Status = partnership.RequestRejected
		other.ResolvedAt = &resolvedAt
		if err := s.requestRepo.Update(ctx, other); err != nil {
			return fmt.Errorf("invalidate request %s: %w", other.ID, err)
		}
	}

	return nil
}
