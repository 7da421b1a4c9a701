package usecase

import (
	"errors"
	"testing"

	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/domain/match"
	"github.com/courtside/league-night/internal/domain/night"
	"github.com/courtside/league-night/internal/domain/schedule"
)

func (env *testEnv) seedCompletedMatch(t *testing.T, id, nightID, p1, p2 string) {
	t.Helper()

	completedAt := env.clock
	m := match.Match{
		ID:             id,
		NightID:        nightID,
		Partnership1ID: p1,
		Partnership2ID: p2,
		CourtNumber:    1,
		Status:         match.StatusCompleted,
		ScoreStatus:    match.ScoreConfirmed,
		Team1Score:     15,
		Team2Score:     11,
		CreatedAt:      env.clock,
		CompletedAt:    &completedAt,
	}
	if err := env.matches.Create(t.Context(), m); err != nil {
		t.Fatalf("seed completed match %s: %v", id, err)
	}
}

func TestAllocator_PicksMinimumGamesPartnerships(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 1, true)
	env.seedPartnership(t, "ps-a", "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-b", "night-1", "pl-cora", "pl-dex")
	env.seedPartnership(t, "ps-c", "night-1", "pl-elle", "pl-finn")
	env.seedPartnership(t, "ps-d", "night-1", "pl-gia", "pl-hugo")

	// History gives ps-c one game and ps-d two; ps-a and ps-b have none.
	ghost := env.seedPartnership(t, "ps-ghost", "night-1", "pl-ines", "pl-jonas")
	ghost.Active = false
	if err := env.partnerships.Update(t.Context(), ghost); err != nil {
		t.Fatalf("deactivate ghost partnership: %v", err)
	}
	env.seedCompletedMatch(t, "hist-1", "night-1", "ps-c", "ps-ghost")
	env.seedCompletedMatch(t, "hist-2", "night-1", "ps-d", "ps-ghost")
	env.seedCompletedMatch(t, "hist-3", "night-1", "ps-d", "ps-ghost")

	result, err := env.allocator.CreateMatchesNow(t.Context(), "night-1")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if len(result.Created) != 1 {
		t.Fatalf("expected one match on the single court, got %d", len(result.Created))
	}
	created := result.Created[0]
	if created.Partnership1ID != "ps-a" || created.Partnership2ID != "ps-b" {
		t.Fatalf("expected the two zero-game partnerships paired, got %s vs %s", created.Partnership1ID, created.Partnership2ID)
	}
	if result.LimitedBy != schedule.LimitCourts {
		t.Fatalf("expected courts to be the limiting bound, got %q", result.LimitedBy)
	}
	if result.WaitingAfter != 2 {
		t.Fatalf("expected two partnerships left waiting, got %d", result.WaitingAfter)
	}
}

func TestAllocator_SecondPassCreatesNothing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)
	env.seedPartnership(t, "ps-a", "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-b", "night-1", "pl-cora", "pl-dex")

	first, err := env.allocator.CreateMatchesNow(t.Context(), "night-1")
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if len(first.Created) != 1 {
		t.Fatalf("expected one match, got %d", len(first.Created))
	}

	second, err := env.allocator.CreateMatchesNow(t.Context(), "night-1")
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(second.Created) != 0 {
		t.Fatalf("expected idempotent second pass, got %d matches", len(second.Created))
	}
}

func TestAllocator_CompletedNight(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	instance := env.seedNight(t, "night-1", 1, true)
	instance.Status = night.StatusCompleted
	if err := env.nights.Update(t.Context(), instance); err != nil {
		t.Fatalf("complete night: %v", err)
	}

	if _, err := env.allocator.CreateMatchesNow(t.Context(), "night-1"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition on completed night, got %v", err)
	}
}

func TestAllocator_FivePlayersTwoPartnershipsOneCourt(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 1, true)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben", "pl-cora", "pl-dex", "pl-elle")
	env.seedPartnership(t, "ps-a", "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-b", "night-1", "pl-cora", "pl-dex")

	result, err := env.allocator.CreateMatchesNow(t.Context(), "night-1")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(result.Created))
	}
	if result.WaitingAfter != 0 {
		t.Fatalf("expected no partnerships waiting, got %d", result.WaitingAfter)
	}

	snapshot, err := env.allocator.Snapshot(t.Context(), "night-1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.CheckedInPlayers != 5 {
		t.Fatalf("expected 5 checked-in players, got %d", snapshot.CheckedInPlayers)
	}
	if snapshot.UnpartneredCount != 1 {
		t.Fatalf("expected one unpartnered player, got %d", snapshot.UnpartneredCount)
	}
	if len(snapshot.Waiting) != 0 {
		t.Fatalf("expected empty waiting queue, got %d", len(snapshot.Waiting))
	}
	if len(snapshot.Playing) != 2 {
		t.Fatalf("expected two playing entries, got %d", len(snapshot.Playing))
	}
	if snapshot.CourtsInUse != 1 || len(snapshot.FreeCourts) != 0 {
		t.Fatalf("expected the single court in use, got in-use=%d free=%d", snapshot.CourtsInUse, len(snapshot.FreeCourts))
	}
}

func TestAllocator_EventPerCreatedMatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)
	env.seedPartnership(t, "ps-a", "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-b", "night-1", "pl-cora", "pl-dex")
	env.seedPartnership(t, "ps-c", "night-1", "pl-elle", "pl-finn")
	env.seedPartnership(t, "ps-d", "night-1", "pl-gia", "pl-hugo")

	result, err := env.allocator.CreateMatchesNow(t.Context(), "night-1")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("expected both courts filled, got %d", len(result.Created))
	}
	if got := env.recorder.ByType(event.TypeMatchAssigned); len(got) != 2 {
		t.Fatalf("expected one assigned event per match, got %d", len(got))
	}
	if result.Created[0].CourtNumber == result.Created[1].CourtNumber {
		t.Fatalf("expected distinct courts, both got %d", result.Created[0].CourtNumber)
	}
}

func TestAllocator_Snapshot_UnknownNight(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	if _, err := env.allocator.Snapshot(t.Context(), "night-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
