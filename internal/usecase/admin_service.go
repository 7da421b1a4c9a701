package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/league-night/internal/domain/checkin"
	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/domain/match"
	"github.com/courtside/league-night/internal/domain/night"
	"github.com/courtside/league-night/internal/domain/partnership"
	"github.com/courtside/league-night/internal/domain/user"
	idgen "github.com/courtside/league-night/internal/platform/id"
	"github.com/courtside/league-night/internal/platform/logging"
)

// AdminService is the override gateway: privileged operations that bypass
// the "who may call this" restriction but never the state invariants. Every
// entry point checks the principal's role itself instead of trusting the
// transport.
type AdminService struct {
	nightRepo       night.Repository
	matchRepo       match.Repository
	partnershipRepo partnership.Repository
	checkins        *CheckInService
	partnerships    *PartnershipService
	allocator       *AllocatorService
	idGen           idgen.Generator
	locks           *InstanceLocks
	publisher       event.Publisher
	logger          *logging.Logger
	now             func() time.Time
}

func NewAdminService(
	nightRepo night.Repository,
	matchRepo match.Repository,
	partnershipRepo partnership.Repository,
	checkins *CheckInService,
	partnerships *PartnershipService,
	allocator *AllocatorService,
	gen idgen.Generator,
	locks *InstanceLocks,
	publisher event.Publisher,
	logger *logging.Logger,
) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AdminService{
		nightRepo:       nightRepo,
		matchRepo:       matchRepo,
		partnershipRepo: partnershipRepo,
		checkins:        checkins,
		partnerships:    partnerships,
		allocator:       allocator,
		idGen:           gen,
		locks:           locks,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
}

// OverrideScore supplies final scores directly, skipping the pending stage.
// Used to resolve disputes or correct mistakes; the score rule still applies.
func (s *AdminService) OverrideScore(ctx context.Context, principal user.Principal, matchID string, team1, team2 int) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.AdminService.OverrideScore")
	defer span.End()

	if err := s.requireAdmin(principal); err != nil {
		return match.Match{}, err
	}
	if err := match.ValidateScore(team1, team2); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m, unlock, err := s.lockMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	defer unlock()

	if m.Status != match.StatusActive {
		return match.Match{}, fmt.Errorf("%w: match %s is not active", ErrPrecondition, matchID)
	}

	completedAt := s.now()
	m.Team1Score = team1
	m.Team2Score = team2
	m.Status = match.StatusCompleted
	m.ScoreStatus = match.ScoreConfirmed
	m.CompletedAt = &completedAt
	m.PendingTeam1Score = 0
	m.PendingTeam2Score = 0
	m.PendingSubmittedBy = ""
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("override score: %w", err)
	}

	s.logger.InfoContext(ctx, "score overridden",
		"match_id", m.ID,
		"admin_id", principal.UserID,
		"team1_score", team1,
		"team2_score", team2,
	)
	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeMatchCompleted,
		NightID: m.NightID,
		At:      s.now(),
		Payload: map[string]any{
			"match_id":    m.ID,
			"team1_score": team1,
			"team2_score": team2,
			"overridden":  true,
		},
	})

	if _, err := s.allocator.allocateLocked(ctx, m.NightID); err != nil {
		return match.Match{}, fmt.Errorf("allocate after override: %w", err)
	}

	return m, nil
}

// AssignMatch puts two chosen partnerships on a chosen court, with the same
// validation the allocator applies: both unmatched, court free.
func (s *AdminService) AssignMatch(ctx context.Context, principal user.Principal, nightID, partnership1ID, partnership2ID string, courtNumber int) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.AdminService.AssignMatch")
	defer span.End()

	if err := s.requireAdmin(principal); err != nil {
		return match.Match{}, err
	}
	if nightID == "" || partnership1ID == "" || partnership2ID == "" {
		return match.Match{}, fmt.Errorf("%w: night id and both partnership ids are required", ErrInvalidInput)
	}
	if partnership1ID == partnership2ID {
		return match.Match{}, fmt.Errorf("%w: a partnership cannot play itself", ErrInvalidInput)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	instance, err := s.openNight(ctx, nightID)
	if err != nil {
		return match.Match{}, err
	}

	court, ok := instance.CourtByNumber(courtNumber)
	if !ok {
		return match.Match{}, fmt.Errorf("%w: court %d is not on the night's roster", ErrNotFound, courtNumber)
	}

	active, err := s.matchRepo.ListActiveByNight(ctx, nightID)
	if err != nil {
		return match.Match{}, fmt.Errorf("list active matches: %w", err)
	}
	for _, existing := range active {
		if existing.CourtNumber == courtNumber {
			return match.Match{}, fmt.Errorf("%w: court %d already hosts an active match", ErrConflict, courtNumber)
		}
		if existing.HasPartnership(partnership1ID) || existing.HasPartnership(partnership2ID) {
			return match.Match{}, fmt.Errorf("%w: partnership already playing", ErrConflict)
		}
	}

	for _, pid := range []string{partnership1ID, partnership2ID} {
		p, ok, err := s.partnershipRepo.GetByID(ctx, pid)
		if err != nil {
			return match.Match{}, fmt.Errorf("get partnership %s: %w", pid, err)
		}
		if !ok || p.NightID != nightID {
			return match.Match{}, fmt.Errorf("%w: partnership %s", ErrNotFound, pid)
		}
		if !p.Active {
			return match.Match{}, fmt.Errorf("%w: partnership %s is not active", ErrPrecondition, pid)
		}
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	m := match.Match{
		ID:             newID,
		NightID:        nightID,
		Partnership1ID: partnership1ID,
		Partnership2ID: partnership2ID,
		CourtNumber:    courtNumber,
		Status:         match.StatusActive,
		ScoreStatus:    match.ScoreNone,
		CreatedAt:      s.now(),
	}
	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeMatchAssigned,
		NightID: nightID,
		At:      s.now(),
		Payload: map[string]any{
			"match_id":        m.ID,
			"partnership1_id": m.Partnership1ID,
			"partnership2_id": m.Partnership2ID,
			"court_number":    m.CourtNumber,
			"court_label":     court.Label,
			"manual":          true,
		},
	})

	return m, nil
}

// CancelMatch destroys an active match. Both partnerships fall back into the
// waiting pool, so the allocator runs straight after.
func (s *AdminService) CancelMatch(ctx context.Context, principal user.Principal, matchID string) error {
	ctx, span := startSpan(ctx, "usecase.AdminService.CancelMatch")
	defer span.End()

	if err := s.requireAdmin(principal); err != nil {
		return err
	}

	m, unlock, err := s.lockMatch(ctx, matchID)
	if err != nil {
		return err
	}
	defer unlock()

	if m.Status != match.StatusActive {
		return fmt.Errorf("%w: match %s is not active", ErrPrecondition, matchID)
	}

	m.Status = match.StatusCancelled
	m.ScoreStatus = match.ScoreNone
	m.PendingTeam1Score = 0
	m.PendingTeam2Score = 0
	m.PendingSubmittedBy = ""
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return fmt.Errorf("cancel match: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeMatchCancelled,
		NightID: m.NightID,
		At:      s.now(),
		Payload: map[string]any{"match_id": m.ID, "admin_id": principal.UserID},
	})

	if _, err := s.allocator.allocateLocked(ctx, m.NightID); err != nil {
		return fmt.Errorf("allocate after cancellation: %w", err)
	}

	return nil
}

func (s *AdminService) CheckInPlayer(ctx context.Context, principal user.Principal, nightID, playerID string) (checkin.CheckIn, error) {
	ctx, span := startSpan(ctx, "usecase.AdminService.CheckInPlayer")
	defer span.End()

	if err := s.requireAdmin(principal); err != nil {
		return checkin.CheckIn{}, err
	}

	return s.checkins.CheckIn(ctx, nightID, playerID)
}

func (s *AdminService) CheckOutPlayer(ctx context.Context, principal user.Principal, nightID, playerID string) error {
	ctx, span := startSpan(ctx, "usecase.AdminService.CheckOutPlayer")
	defer span.End()

	if err := s.requireAdmin(principal); err != nil {
		return err
	}

	return s.checkins.CheckOut(ctx, nightID, playerID)
}

func (s *AdminService) CreatePartnership(ctx context.Context, principal user.Principal, nightID, player1ID, player2ID string) (partnership.Partnership, error) {
	ctx, span := startSpan(ctx, "usecase.AdminService.CreatePartnership")
	defer span.End()

	if err := s.requireAdmin(principal); err != nil {
		return partnership.Partnership{}, err
	}
	if nightID == "" || player1ID == "" || player2ID == "" {
		return partnership.Partnership{}, fmt.Errorf("%w: night id and both player ids are required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	if _, err := s.openNight(ctx, nightID); err != nil {
		return partnership.Partnership{}, err
	}

	return s.partnerships.createConfirmedLocked(ctx, nightID, player1ID, player2ID)
}

func (s *AdminService) RemovePartnership(ctx context.Context, principal user.Principal, nightID, playerID string) error {
	ctx, span := startSpan(ctx, "usecase.AdminService.RemovePartnership")
	defer span.End()

	if err := s.requireAdmin(principal); err != nil {
		return err
	}

	return s.partnerships.RemovePartnership(ctx, nightID, playerID)
}

// UpdateCourts replaces the night's court roster. Removing a court under an
// active match does not interrupt that match; the court simply never shows
// up as free again.
func (s *AdminService) UpdateCourts(ctx context.Context, principal user.Principal, nightID string, courts []night.Court) (night.Instance, error) {
	ctx, span := startSpan(ctx, "usecase.AdminService.UpdateCourts")
	defer span.End()

	if err := s.requireAdmin(principal); err != nil {
		return night.Instance{}, err
	}
	if err := night.ValidateCourts(courts); err != nil {
		return night.Instance{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	instance, err := s.openNight(ctx, nightID)
	if err != nil {
		return night.Instance{}, err
	}

	instance.Courts = courts
	if err := s.nightRepo.Update(ctx, instance); err != nil {
		return night.Instance{}, fmt.Errorf("update courts: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeCourtsUpdated,
		NightID: nightID,
		At:      s.now(),
		Payload: map[string]any{"court_count": len(courts)},
	})

	// Added courts may unblock the queue.
	if _, err := s.allocator.allocateLocked(ctx, nightID); err != nil {
		return night.Instance{}, fmt.Errorf("allocate after court update: %w", err)
	}

	return instance, nil
}

// SetAutoAssignment flips the flag; turning it on runs the allocator once
// immediately.
func (s *AdminService) SetAutoAssignment(ctx context.Context, principal user.Principal, nightID string, enabled bool) (night.Instance, error) {
	ctx, span := startSpan(ctx, "usecase.AdminService.SetAutoAssignment")
	defer span.End()

	if err := s.requireAdmin(principal); err != nil {
		return night.Instance{}, err
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	instance, err := s.openNight(ctx, nightID)
	if err != nil {
		return night.Instance{}, err
	}

	instance.AutoAssignEnabled = enabled
	if err := s.nightRepo.Update(ctx, instance); err != nil {
		return night.Instance{}, fmt.Errorf("toggle auto-assignment: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeAutoAssignToggled,
		NightID: nightID,
		At:      s.now(),
		Payload: map[string]any{"enabled": enabled},
	})

	if enabled {
		if _, err := s.allocator.allocateLocked(ctx, nightID); err != nil {
			return night.Instance{}, fmt.Errorf("allocate after toggle: %w", err)
		}
	}

	return instance, nil
}

// CompleteNight closes the instance. Matches still on court stay as they
// are; nothing new gets assigned afterwards.
func (s *AdminService) CompleteNight(ctx context.Context, principal user.Principal, nightID string) (night.Instance, error) {
	ctx, span := startSpan(ctx, "usecase.AdminService.CompleteNight")
	defer span.End()

	if err := s.requireAdmin(principal); err != nil {
		return night.Instance{}, err
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	instance, err := s.openNight(ctx, nightID)
	if err != nil {
		return night.Instance{}, err
	}

	completedAt := s.now()
	instance.Status = night.StatusCompleted
	instance.CompletedAt = &completedAt
	if err := s.nightRepo.Update(ctx, instance); err != nil {
		return night.Instance{}, fmt.Errorf("complete night: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeNightCompleted,
		NightID: nightID,
		At:      s.now(),
		Payload: map[string]any{"admin_id": principal.UserID},
	})

	return instance, nil
}

func (s *AdminService) requireAdmin(principal user.Principal) error {
	if !principal.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrUnauthorized)
	}

	return nil
}

func (s *AdminService) openNight(ctx context.Context, nightID string) (night.Instance, error) {
	instance, ok, err := s.nightRepo.GetByID(ctx, nightID)
	if err != nil {
		return night.Instance{}, fmt.Errorf("get night: %w", err)
	}
	if !ok {
		return night.Instance{}, fmt.Errorf("%w: night %s", ErrNotFound, nightID)
	}
	if instance.Status == night.StatusCompleted {
		return night.Instance{}, fmt.Errorf("%w: night %s is completed", ErrPrecondition, nightID)
	}

	return instance, nil
}

func (s *AdminService) lockMatch(ctx context.Context, matchID string) (match.Match, func(), error) {
	if matchID == "" {
		return match.Match{}, nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, nil, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return match.Match{}, nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	unlock := s.locks.Lock(m.NightID)

	m, ok, err = s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		unlock()
		return match.Match{}, nil, fmt.Errorf("reload match: %w", err)
	}
	if !ok {
		unlock()
		return match.Match{}, nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	return m, unlock, nil
}
