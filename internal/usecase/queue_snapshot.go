package usecase

import (
	"context"
	"fmt"

	"github.com/courtside/league-night/internal/domain/night"
)

// QueueEntry is one waiting partnership in effective-fairness order.
type QueueEntry struct {
	PartnershipID string
	Player1ID     string
	Player2ID     string
	GamesPlayed   int
	Position      int
}

// PlayingEntry is one partnership currently on court.
type PlayingEntry struct {
	PartnershipID string
	MatchID       string
	CourtNumber   int
	CourtLabel    string
}

// QueueSnapshot is a read-only view of the night's queue: who is waiting
// in what order, who is playing where, and how many courts are open.
type QueueSnapshot struct {
	NightID           string
	Waiting           []QueueEntry
	Playing           []PlayingEntry
	FreeCourts        []night.Court
	CourtsInUse       int
	CheckedInPlayers  int
	UnpartneredCount  int
	AutoAssignEnabled bool
}

// Snapshot computes the queue view without mutating anything. It takes the
// instance lock so the waiting order it reports is one the allocator could
// actually act on.
func (s *AllocatorService) Snapshot(ctx context.Context, nightID string) (QueueSnapshot, error) {
	ctx, span := startSpan(ctx, "usecase.AllocatorService.Snapshot")
	defer span.End()

	if nightID == "" {
		return QueueSnapshot{}, fmt.Errorf("%w: night id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(nightID)
	defer unlock()

	instance, ok, err := s.nightRepo.GetByID(ctx, nightID)
	if err != nil {
		return QueueSnapshot{}, fmt.Errorf("get night: %w", err)
	}
	if !ok {
		return QueueSnapshot{}, fmt.Errorf("%w: night %s", ErrNotFound, nightID)
	}

	ranked, freeCourts, _, err := s.queueState(ctx, instance)
	if err != nil {
		return QueueSnapshot{}, err
	}

	waiting := make([]QueueEntry, 0, len(ranked))
	for i, e := range ranked {
		waiting = append(waiting, QueueEntry{
			PartnershipID: e.PartnershipID,
			Player1ID:     e.Player1ID,
			Player2ID:     e.Player2ID,
			GamesPlayed:   e.GamesPlayed,
			Position:      i + 1,
		})
	}

	active, err := s.matchRepo.ListActiveByNight(ctx, nightID)
	if err != nil {
		return QueueSnapshot{}, fmt.Errorf("list active matches: %w", err)
	}

	playing := make([]PlayingEntry, 0, 2*len(active))
	for _, m := range active {
		label := ""
		if court, ok := instance.CourtByNumber(m.CourtNumber); ok {
			label = court.Label
		}
		for _, pid := range []string{m.Partnership1ID, m.Partnership2ID} {
			playing = append(playing, PlayingEntry{
				PartnershipID: pid,
				MatchID:       m.ID,
				CourtNumber:   m.CourtNumber,
				CourtLabel:    label,
			})
		}
	}

	checkins, err := s.checkinRepo.ListActive(ctx, nightID)
	if err != nil {
		return QueueSnapshot{}, fmt.Errorf("list active check-ins: %w", err)
	}

	partnerships, err := s.partnershipRepo.ListActive(ctx, nightID)
	if err != nil {
		return QueueSnapshot{}, fmt.Errorf("list active partnerships: %w", err)
	}

	partnered := make(map[string]struct{}, 2*len(partnerships))
	for _, p := range partnerships {
		partnered[p.Player1ID] = struct{}{}
		partnered[p.Player2ID] = struct{}{}
	}

	unpartnered := 0
	for _, c := range checkins {
		if _, ok := partnered[c.PlayerID]; !ok {
			unpartnered++
		}
	}

	return QueueSnapshot{
		NightID:           nightID,
		Waiting:           waiting,
		Playing:           playing,
		FreeCourts:        freeCourts,
		CourtsInUse:       len(active),
		CheckedInPlayers:  len(checkins),
		UnpartneredCount:  unpartnered,
		AutoAssignEnabled: instance.AutoAssignEnabled,
	}, nil
}
