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
	"github.com/courtside/league-night/internal/domain/schedule"
	idgen "github.com/courtside/league-night/internal/platform/id"
	"github.com/courtside/league-night/internal/platform/logging"
)

// AllocationResult reports what one allocator pass did and why it stopped.
type AllocationResult struct {
	Created      []match.Match
	WaitingAfter int
	FreeCourts   int
	CourtsInUse  int
	LimitedBy    schedule.Limit
}

// AllocatorService assigns waiting partnerships to free courts by minimum
// games played. Every invocation recomputes the waiting set and court set
// from scratch, so repeated calls with unchanged state create nothing.
type AllocatorService struct {
	nightRepo       night.Repository
	partnershipRepo partnership.Repository
	matchRepo       match.Repository
	checkinRepo     checkin.Repository
	tiebreak        schedule.Tiebreak
	idGen           idgen.Generator
	locks           *InstanceLocks
	publisher       event.Publisher
	logger          *logging.Logger
	now             func() time.Time
}

func NewAllocatorService(
	nightRepo night.Repository,
	partnershipRepo partnership.Repository,
	matchRepo match.Repository,
	checkinRepo checkin.Repository,
	tiebreak schedule.Tiebreak,
	gen idgen.Generator,
	locks *InstanceLocks,
	publisher event.Publisher,
	logger *logging.Logger,
) *AllocatorService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AllocatorService{
		nightRepo:       nightRepo,
		partnershipRepo: partnershipRepo,
		matchRepo:       matchRepo,
		checkinRepo:     checkinRepo,
		tiebreak:        tiebreak,
		idGen:           gen,
		locks:           locks,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
}

// CreateMatchesNow runs one allocation pass on demand, regardless of the
// auto-assignment flag.
func (s *AllocatorService) CreateMatchesNow(ctx context.Context, nightID string) (AllocationResult, error) {
	ctx, span := startSpan(ctx, "usecase.AllocatorService.CreateMatchesNow")
	defer span.End()

	if nightID == "" {
		return AllocationResult{}, fmt.Errorf("%w: night id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	return s.runAllocation(ctx, nightID)
}

// allocateLocked is the auto-assignment trigger path. The caller must hold
// the instance lock. A disabled auto-assignment flag makes it a no-op.
func (s *AllocatorService) allocateLocked(ctx context.Context, nightID string) (AllocationResult, error) {
	instance, ok, err := s.nightRepo.GetByID(ctx, nightID)
	if err != nil {
		return AllocationResult{}, fmt.Errorf("get night: %w", err)
	}
	if !ok {
		return AllocationResult{}, fmt.Errorf("%w: night %s", ErrNotFound, nightID)
	}
	if !instance.AutoAssignEnabled || instance.Status == night.StatusCompleted {
		return AllocationResult{}, nil
	}

	return s.runAllocation(ctx, nightID)
}

func (s *AllocatorService) runAllocation(ctx context.Context, nightID string) (AllocationResult, error) {
	instance, ok, err := s.nightRepo.GetByID(ctx, nightID)
	if err != nil {
		return AllocationResult{}, fmt.Errorf("get night: %w", err)
	}
	if !ok {
		return AllocationResult{}, fmt.Errorf("%w: night %s", ErrNotFound, nightID)
	}
	if instance.Status == night.StatusCompleted {
		return AllocationResult{}, fmt.Errorf("%w: night %s is completed", ErrPrecondition, nightID)
	}

	ranked, freeCourts, inUse, err := s.queueState(ctx, instance)
	if err != nil {
		return AllocationResult{}, err
	}

	k, limit := schedule.PairCount(len(ranked), len(freeCourts))

	created := make([]match.Match, 0, k)
	for i := 0; i < k; i++ {
		newID, err := s.idGen.NewID()
		if err != nil {
			return AllocationResult{}, fmt.Errorf("generate match id: %w", err)
		}

		m := match.Match{
			ID:             newID,
			NightID:        nightID,
			Partnership1ID: ranked[2*i].PartnershipID,
			Partnership2ID: ranked[2*i+1].PartnershipID,
			CourtNumber:    freeCourts[i].Number,
			Status:         match.StatusActive,
			ScoreStatus:    match.ScoreNone,
			CreatedAt:      s.now(),
		}
		if err := s.matchRepo.Create(ctx, m); err != nil {
			return AllocationResult{}, fmt.Errorf("create match: %w", err)
		}
		created = append(created, m)

		s.publisher.Publish(ctx, event.Event{
			Type:    event.TypeMatchAssigned,
			NightID: nightID,
			At:      s.now(),
			Payload: map[string]any{
				"match_id":        m.ID,
				"partnership1_id": m.Partnership1ID,
				"partnership2_id": m.Partnership2ID,
				"court_number":    m.CourtNumber,
				"court_label":     freeCourts[i].Label,
			},
		})
	}

	result := AllocationResult{
		Created:      created,
		WaitingAfter: len(ranked) - 2*k,
		FreeCourts:   len(freeCourts) - k,
		CourtsInUse:  inUse + k,
		LimitedBy:    limit,
	}

	if len(created) > 0 {
		s.logger.InfoContext(ctx, "courts allocated",
			"night_id", nightID,
			"matches_created", len(created),
			"waiting_after", result.WaitingAfter,
			"free_courts", result.FreeCourts,
		)
	}

	return result, nil
}

// queueState derives the ranked waiting set and the free court list. Games
// played tonight is always recomputed from completed match history.
func (s *AllocatorService) queueState(ctx context.Context, instance night.Instance) ([]schedule.Entry, []night.Court, int, error) {
	active, err := s.matchRepo.ListActiveByNight(ctx, instance.ID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("list active matches: %w", err)
	}

	busyPartnerships := make(map[string]struct{}, 2*len(active))
	busyCourts := make(map[int]struct{}, len(active))
	for _, m := range active {
		busyPartnerships[m.Partnership1ID] = struct{}{}
		busyPartnerships[m.Partnership2ID] = struct{}{}
		busyCourts[m.CourtNumber] = struct{}{}
	}

	partnerships, err := s.partnershipRepo.ListActive(ctx, instance.ID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("list active partnerships: %w", err)
	}

	games, err := s.gamesPlayed(ctx, instance.ID)
	if err != nil {
		return nil, nil, 0, err
	}

	entries := make([]schedule.Entry, 0, len(partnerships))
	for _, p := range partnerships {
		if _, busy := busyPartnerships[p.ID]; busy {
			continue
		}
		entries = append(entries, schedule.Entry{
			PartnershipID: p.ID,
			Player1ID:     p.Player1ID,
			Player2ID:     p.Player2ID,
			GamesPlayed:   games[p.ID],
		})
	}

	ranked := schedule.Rank(entries, s.tiebreak)

	// Court order is the stored roster order, never shuffled.
	freeCourts := make([]night.Court, 0, len(instance.Courts))
	for _, c := range instance.Courts {
		if _, busy := busyCourts[c.Number]; !busy {
			freeCourts = append(freeCourts, c)
		}
	}

	return ranked, freeCourts, len(busyCourts), nil
}

func (s *AllocatorService) gamesPlayed(ctx context.Context, nightID string) (map[string]int, error) {
	completed, err := s.matchRepo.ListCompletedByNight(ctx, nightID)
	if err != nil {
		return nil, fmt.Errorf("list completed matches: %w", err)
	}

	games := make(map[string]int, 2*len(completed))
	for _, m := range completed {
		games[m.Partnership1ID]++
		games[m.Partnership2ID]++
	}

	return games, nil
}
