package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/domain/match"
	"github.com/courtside/league-night/internal/domain/partnership"
	"github.com/courtside/league-night/internal/platform/logging"
)

// MatchService owns the score life cycle of an active match: one side
// submits, the other confirms or disputes. Confirmation completes the match
// and releases the court back to the allocator.
type MatchService struct {
	matchRepo       match.Repository
	partnershipRepo partnership.Repository
	allocator       *AllocatorService
	locks           *InstanceLocks
	publisher       event.Publisher
	logger          *logging.Logger
	now             func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	partnershipRepo partnership.Repository,
	allocator *AllocatorService,
	locks *InstanceLocks,
	publisher event.Publisher,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo:       matchRepo,
		partnershipRepo: partnershipRepo,
		allocator:       allocator,
		locks:           locks,
		publisher:       publisher,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *MatchService) GetByID(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.GetByID")
	defer span.End()

	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	return m, nil
}

func (s *MatchService) SubmitScore(ctx context.Context, matchID, playerID string, team1, team2 int) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.SubmitScore")
	defer span.End()

	m, unlock, err := s.lockMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	defer unlock()

	side, err := s.sideOf(ctx, m, playerID)
	if err != nil {
		return match.Match{}, err
	}
	if m.Status != match.StatusActive {
		return match.Match{}, fmt.Errorf("%w: match %s is not active", ErrPrecondition, matchID)
	}
	if m.ScoreStatus == match.ScorePending {
		return match.Match{}, fmt.Errorf("%w: a score is already awaiting confirmation", ErrConflict)
	}
	if err := match.ValidateScore(team1, team2); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m.PendingTeam1Score = team1
	m.PendingTeam2Score = team2
	m.PendingSubmittedBy = side
	m.ScoreStatus = match.ScorePending
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("store pending score: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeScorePending,
		NightID: m.NightID,
		At:      s.now(),
		Payload: map[string]any{
			"match_id":     m.ID,
			"submitted_by": side,
			"team1_score":  team1,
			"team2_score":  team2,
		},
	})

	return m, nil
}

// ConfirmScore finalizes the pending score. The confirming side must be the
// opponent of the submitter.
func (s *MatchService) ConfirmScore(ctx context.Context, matchID, playerID string) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.ConfirmScore")
	defer span.End()

	m, unlock, err := s.lockMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	defer unlock()

	side, err := s.requirePendingCounterpart(ctx, m, playerID)
	if err != nil {
		return match.Match{}, err
	}

	completedAt := s.now()
	m.Team1Score = m.PendingTeam1Score
	m.Team2Score = m.PendingTeam2Score
	m.Status = match.StatusCompleted
	m.ScoreStatus = match.ScoreConfirmed
	m.CompletedAt = &completedAt
	m.PendingTeam1Score = 0
	m.PendingTeam2Score = 0
	m.PendingSubmittedBy = ""
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("complete match: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeMatchCompleted,
		NightID: m.NightID,
		At:      s.now(),
		Payload: map[string]any{
			"match_id":     m.ID,
			"team1_score":  m.Team1Score,
			"team2_score":  m.Team2Score,
			"confirmed_by": side,
		},
	})

	// The court just came free; a waiting pair may take it immediately.
	if _, err := s.allocator.allocateLocked(ctx, m.NightID); err != nil {
		return match.Match{}, fmt.Errorf("allocate after confirmation: %w", err)
	}

	return m, nil
}

// DisputeScore clears the pending submission and returns the match to the
// submission stage. Disputed is not terminal: either side may submit again.
func (s *MatchService) DisputeScore(ctx context.Context, matchID, playerID string) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.DisputeScore")
	defer span.End()

	m, unlock, err := s.lockMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	defer unlock()

	side, err := s.requirePendingCounterpart(ctx, m, playerID)
	if err != nil {
		return match.Match{}, err
	}

	m.PendingTeam1Score = 0
	m.PendingTeam2Score = 0
	m.PendingSubmittedBy = ""
	m.ScoreStatus = match.ScoreDisputed
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("dispute score: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeScoreDisputed,
		NightID: m.NightID,
		At:      s.now(),
		Payload: map[string]any{"match_id": m.ID, "disputed_by": side},
	})

	return m, nil
}

// CancelSubmission lets the submitter withdraw before the opponent acts.
func (s *MatchService) CancelSubmission(ctx context.Context, matchID, playerID string) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.CancelSubmission")
	defer span.End()

	m, unlock, err := s.lockMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	defer unlock()

	side, err := s.sideOf(ctx, m, playerID)
	if err != nil {
		return match.Match{}, err
	}
	if m.ScoreStatus != match.ScorePending {
		return match.Match{}, fmt.Errorf("%w: no score is awaiting confirmation", ErrPrecondition)
	}
	if m.PendingSubmittedBy != side {
		return match.Match{}, fmt.Errorf("%w: only the submitting side may withdraw", ErrUnauthorized)
	}

	m.PendingTeam1Score = 0
	m.PendingTeam2Score = 0
	m.PendingSubmittedBy = ""
	m.ScoreStatus = match.ScoreNone
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("withdraw submission: %w", err)
	}

	s.publisher.Publish(ctx, event.Event{
		Type:    event.TypeScoreWithdrawn,
		NightID: m.NightID,
		At:      s.now(),
		Payload: map[string]any{"match_id": m.ID},
	})

	return m, nil
}

// lockMatch resolves the match's night, takes that instance's lock and
// re-reads the match under it.
func (s *MatchService) lockMatch(ctx context.Context, matchID string) (match.Match, func(), error) {
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

// sideOf maps the calling player to their partnership in the match. The
// lookup goes through the match's own partnership ids, so a member of a
// since-deactivated partnership can still act on the in-flight match.
func (s *MatchService) sideOf(ctx context.Context, m match.Match, playerID string) (string, error) {
	if playerID == "" {
		return "", fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	for _, pid := range []string{m.Partnership1ID, m.Partnership2ID} {
		p, ok, err := s.partnershipRepo.GetByID(ctx, pid)
		if err != nil {
			return "", fmt.Errorf("get partnership %s: %w", pid, err)
		}
		if ok && p.Has(playerID) {
			return pid, nil
		}
	}

	return "", fmt.Errorf("%w: player %s is not part of match %s", ErrUnauthorized, playerID, m.ID)
}

func (s *MatchService) requirePendingCounterpart(ctx context.Context, m match.Match, playerID string) (string, error) {
	side, err := s.sideOf(ctx, m, playerID)
	if err != nil {
		return "", err
	}
	if m.ScoreStatus != match.ScorePending {
		return "", fmt.Errorf("%w: no score is awaiting confirmation", ErrPrecondition)
	}
	if m.PendingSubmittedBy == side {
		return "", fmt.Errorf("%w: the submitting side cannot act on its own score", ErrPrecondition)
	}

	return side, nil
}
