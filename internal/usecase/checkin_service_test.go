package usecase

import (
	"errors"
	"testing"

	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/domain/match"
	"github.com/courtside/league-night/internal/domain/night"
)

func TestCheckInService_CheckIn(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)

	item, err := env.checkinSvc.CheckIn(t.Context(), "night-1", "pl-ava")
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if !item.Active || item.PlayerID != "pl-ava" {
		t.Fatalf("unexpected check-in record: %+v", item)
	}

	if got := env.recorder.ByType(event.TypeCheckInCreated); len(got) != 1 {
		t.Fatalf("expected one check-in event, got %d", len(got))
	}
	if got := env.recorder.ByType(event.TypeRosterChanged); len(got) != 1 {
		t.Fatalf("expected one roster-changed event, got %d", len(got))
	}
}

func TestCheckInService_CheckIn_Duplicate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)

	if _, err := env.checkinSvc.CheckIn(t.Context(), "night-1", "pl-ava"); err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if _, err := env.checkinSvc.CheckIn(t.Context(), "night-1", "pl-ava"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on double check-in, got %v", err)
	}
}

func TestCheckInService_CheckIn_UnknownPlayer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)

	if _, err := env.checkinSvc.CheckIn(t.Context(), "night-1", "pl-nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
}

func TestCheckInService_CheckIn_CompletedNight(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	instance := env.seedNight(t, "night-1", 2, true)

	instance.Status = night.StatusCompleted
	if err := env.nights.Update(t.Context(), instance); err != nil {
		t.Fatalf("complete night: %v", err)
	}

	if _, err := env.checkinSvc.CheckIn(t.Context(), "night-1", "pl-ava"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition on completed night, got %v", err)
	}
}

func TestCheckInService_CheckOut_NotCheckedIn(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)

	if err := env.checkinSvc.CheckOut(t.Context(), "night-1", "pl-ava"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition when not checked in, got %v", err)
	}
}

func TestCheckInService_CheckOut_BreaksPartnership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-1", "night-1", "pl-ava", "pl-ben")

	if err := env.checkinSvc.CheckOut(t.Context(), "night-1", "pl-ava"); err != nil {
		t.Fatalf("check out: %v", err)
	}

	if _, ok, err := env.checkins.GetActive(t.Context(), "night-1", "pl-ava"); err != nil || ok {
		t.Fatalf("expected check-in deactivated, ok=%t err=%v", ok, err)
	}
	// The remaining partner is unpartnered again and stays checked in.
	if _, ok, err := env.partnerships.GetActiveByPlayer(t.Context(), "night-1", "pl-ben"); err != nil || ok {
		t.Fatalf("expected partnership broken for partner, ok=%t err=%v", ok, err)
	}
	if _, ok, err := env.checkins.GetActive(t.Context(), "night-1", "pl-ben"); err != nil || !ok {
		t.Fatalf("expected partner still checked in, ok=%t err=%v", ok, err)
	}

	removed := env.recorder.ByType(event.TypePartnershipRemoved)
	if len(removed) != 1 {
		t.Fatalf("expected one partnership-removed event, got %d", len(removed))
	}
	if removed[0].Payload["reason"] != "checkout" {
		t.Fatalf("expected checkout reason, got %v", removed[0].Payload["reason"])
	}
}

func TestCheckInService_CheckOut_LeavesActiveMatchUntouched(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 1, true)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben", "pl-cora", "pl-dex")
	env.seedPartnership(t, "ps-1", "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-2", "night-1", "pl-cora", "pl-dex")

	result, err := env.allocator.CreateMatchesNow(t.Context(), "night-1")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected one match, got %d", len(result.Created))
	}
	matchID := result.Created[0].ID

	if err := env.checkinSvc.CheckOut(t.Context(), "night-1", "pl-ava"); err != nil {
		t.Fatalf("check out mid-match: %v", err)
	}

	m, ok, err := env.matches.GetByID(t.Context(), matchID)
	if err != nil || !ok {
		t.Fatalf("reload match: ok=%t err=%v", ok, err)
	}
	if m.Status != match.StatusActive {
		t.Fatalf("expected in-flight match left active, got %s", m.Status)
	}
}
