package usecase

import (
	"errors"
	"testing"

	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/domain/match"
	"github.com/courtside/league-night/internal/domain/night"
	"github.com/courtside/league-night/internal/domain/user"
)

var (
	adminPrincipal  = user.Principal{UserID: "adm-rosa", DisplayName: "Rosa", Role: user.RoleAdmin}
	playerPrincipal = user.Principal{UserID: "pl-ava", DisplayName: "Ava", Role: user.RolePlayer}
)

func TestAdminService_RequiresAdminRole(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 1, true)

	if _, err := env.adminSvc.OverrideScore(t.Context(), playerPrincipal, "match-1", 15, 11); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("override score: expected ErrUnauthorized, got %v", err)
	}
	if _, err := env.adminSvc.AssignMatch(t.Context(), playerPrincipal, "night-1", "ps-a", "ps-b", 1); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("assign match: expected ErrUnauthorized, got %v", err)
	}
	if err := env.adminSvc.CancelMatch(t.Context(), playerPrincipal, "match-1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("cancel match: expected ErrUnauthorized, got %v", err)
	}
	if _, err := env.adminSvc.SetAutoAssignment(t.Context(), playerPrincipal, "night-1", false); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("set auto-assignment: expected ErrUnauthorized, got %v", err)
	}
	if _, err := env.adminSvc.CompleteNight(t.Context(), playerPrincipal, "night-1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("complete night: expected ErrUnauthorized, got %v", err)
	}
}

func TestAdminService_OverrideScore(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.startMatch(t)

	// A pending submission is swept aside by the override.
	if _, err := env.matchSvc.SubmitScore(t.Context(), m.ID, "pl-ava", 15, 11); err != nil {
		t.Fatalf("submit score: %v", err)
	}

	if _, err := env.adminSvc.OverrideScore(t.Context(), adminPrincipal, m.ID, 15, 14); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad score, got %v", err)
	}

	overridden, err := env.adminSvc.OverrideScore(t.Context(), adminPrincipal, m.ID, 16, 14)
	if err != nil {
		t.Fatalf("override score: %v", err)
	}
	if overridden.Status != match.StatusCompleted || overridden.ScoreStatus != match.ScoreConfirmed {
		t.Fatalf("expected completed and confirmed, got %+v", overridden)
	}
	if overridden.Team1Score != 16 || overridden.Team2Score != 14 {
		t.Fatalf("expected final score 16-14, got %d-%d", overridden.Team1Score, overridden.Team2Score)
	}
	if overridden.PendingSubmittedBy != "" || overridden.ScoreStatus == match.ScorePending {
		t.Fatalf("expected pending submission cleared, got %+v", overridden)
	}
}

func TestAdminService_AssignMatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, false)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben", "pl-cora", "pl-dex")
	env.seedPartnership(t, "ps-a", "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-b", "night-1", "pl-cora", "pl-dex")

	m, err := env.adminSvc.AssignMatch(t.Context(), adminPrincipal, "night-1", "ps-a", "ps-b", 2)
	if err != nil {
		t.Fatalf("assign match: %v", err)
	}
	if m.CourtNumber != 2 || m.Status != match.StatusActive {
		t.Fatalf("unexpected match: %+v", m)
	}

	assigned := env.recorder.ByType(event.TypeMatchAssigned)
	if len(assigned) != 1 {
		t.Fatalf("expected one assigned event, got %d", len(assigned))
	}
	if assigned[0].Payload["manual"] != true {
		t.Fatalf("expected manual flag on the event, got %v", assigned[0].Payload["manual"])
	}
}

func TestAdminService_AssignMatch_Rejections(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, false)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben", "pl-cora", "pl-dex", "pl-elle", "pl-finn")
	env.seedPartnership(t, "ps-a", "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-b", "night-1", "pl-cora", "pl-dex")
	env.seedPartnership(t, "ps-c", "night-1", "pl-elle", "pl-finn")

	if _, err := env.adminSvc.AssignMatch(t.Context(), adminPrincipal, "night-1", "ps-a", "ps-a", 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self pairing, got %v", err)
	}
	if _, err := env.adminSvc.AssignMatch(t.Context(), adminPrincipal, "night-1", "ps-a", "ps-b", 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown court, got %v", err)
	}

	if _, err := env.adminSvc.AssignMatch(t.Context(), adminPrincipal, "night-1", "ps-a", "ps-b", 1); err != nil {
		t.Fatalf("assign match: %v", err)
	}
	if _, err := env.adminSvc.AssignMatch(t.Context(), adminPrincipal, "night-1", "ps-c", "ps-b", 1); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for busy court, got %v", err)
	}
	if _, err := env.adminSvc.AssignMatch(t.Context(), adminPrincipal, "night-1", "ps-c", "ps-a", 2); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for already-playing partnership, got %v", err)
	}

	ghost := env.seedPartnership(t, "ps-ghost", "night-1", "pl-gia", "pl-hugo")
	ghost.Active = false
	if err := env.partnerships.Update(t.Context(), ghost); err != nil {
		t.Fatalf("deactivate partnership: %v", err)
	}
	if _, err := env.adminSvc.AssignMatch(t.Context(), adminPrincipal, "night-1", "ps-c", "ps-ghost", 2); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition for inactive partnership, got %v", err)
	}
}

func TestAdminService_CancelMatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	// Auto-assignment stays off so the cancelled pairs are not put straight
	// back on the court.
	env.seedNight(t, "night-1", 1, false)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben", "pl-cora", "pl-dex")
	env.seedPartnership(t, "ps-a", "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-b", "night-1", "pl-cora", "pl-dex")

	m, err := env.adminSvc.AssignMatch(t.Context(), adminPrincipal, "night-1", "ps-a", "ps-b", 1)
	if err != nil {
		t.Fatalf("assign match: %v", err)
	}

	if err := env.adminSvc.CancelMatch(t.Context(), adminPrincipal, m.ID); err != nil {
		t.Fatalf("cancel match: %v", err)
	}

	stored, ok, err := env.matches.GetByID(t.Context(), m.ID)
	if err != nil || !ok {
		t.Fatalf("reload match: ok=%t err=%v", ok, err)
	}
	if stored.Status != match.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", stored.Status)
	}
	if got := env.recorder.ByType(event.TypeMatchCancelled); len(got) != 1 {
		t.Fatalf("expected one cancelled event, got %d", len(got))
	}

	if err := env.adminSvc.CancelMatch(t.Context(), adminPrincipal, m.ID); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition on second cancel, got %v", err)
	}
}

func TestAdminService_UpdateCourts(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 1, true)

	bad := []night.Court{{Number: 1, Label: "Court 1"}, {Number: 1, Label: "Court 1 again"}}
	if _, err := env.adminSvc.UpdateCourts(t.Context(), adminPrincipal, "night-1", bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate court number, got %v", err)
	}

	roster := []night.Court{{Number: 1, Label: "Court 1"}, {Number: 2, Label: "Court 2"}}
	updated, err := env.adminSvc.UpdateCourts(t.Context(), adminPrincipal, "night-1", roster)
	if err != nil {
		t.Fatalf("update courts: %v", err)
	}
	if len(updated.Courts) != 2 {
		t.Fatalf("expected 2 courts, got %d", len(updated.Courts))
	}

	if got := env.recorder.ByType(event.TypeCourtsUpdated); len(got) != 1 {
		t.Fatalf("expected one courts-updated event, got %d", len(got))
	}
}

func TestAdminService_AddedCourtUnblocksQueue(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 1, true)
	env.seedPartnership(t, "ps-a", "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-b", "night-1", "pl-cora", "pl-dex")
	env.seedPartnership(t, "ps-c", "night-1", "pl-elle", "pl-finn")
	env.seedPartnership(t, "ps-d", "night-1", "pl-gia", "pl-hugo")

	first, err := env.allocator.CreateMatchesNow(t.Context(), "night-1")
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(first.Created) != 1 {
		t.Fatalf("expected single court filled, got %d", len(first.Created))
	}

	roster := []night.Court{{Number: 1, Label: "Court 1"}, {Number: 2, Label: "Court 2"}}
	if _, err := env.adminSvc.UpdateCourts(t.Context(), adminPrincipal, "night-1", roster); err != nil {
		t.Fatalf("update courts: %v", err)
	}

	active, err := env.matches.ListActiveByNight(t.Context(), "night-1")
	if err != nil {
		t.Fatalf("list active matches: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected waiting pair assigned to the new court, got %d active matches", len(active))
	}
}

func TestAdminService_SetAutoAssignment(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 1, false)
	env.seedPartnership(t, "ps-a", "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-b", "night-1", "pl-cora", "pl-dex")

	updated, err := env.adminSvc.SetAutoAssignment(t.Context(), adminPrincipal, "night-1", true)
	if err != nil {
		t.Fatalf("enable auto-assignment: %v", err)
	}
	if !updated.AutoAssignEnabled {
		t.Fatalf("expected flag enabled")
	}
	if got := env.recorder.ByType(event.TypeAutoAssignToggled); len(got) != 1 {
		t.Fatalf("expected one toggle event, got %d", len(got))
	}

	// Enabling runs the allocator immediately.
	active, err := env.matches.ListActiveByNight(t.Context(), "night-1")
	if err != nil {
		t.Fatalf("list active matches: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected one match after enabling, got %d", len(active))
	}
}

func TestAdminService_CompleteNight(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 1, true)

	completed, err := env.adminSvc.CompleteNight(t.Context(), adminPrincipal, "night-1")
	if err != nil {
		t.Fatalf("complete night: %v", err)
	}
	if completed.Status != night.StatusCompleted || completed.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp, got %+v", completed)
	}
	if got := env.recorder.ByType(event.TypeNightCompleted); len(got) != 1 {
		t.Fatalf("expected one night-completed event, got %d", len(got))
	}

	// The closed instance refuses further admin mutations.
	if _, err := env.adminSvc.SetAutoAssignment(t.Context(), adminPrincipal, "night-1", false); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition after completion, got %v", err)
	}
	if _, err := env.adminSvc.CompleteNight(t.Context(), adminPrincipal, "night-1"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition on double completion, got %v", err)
	}
}

func TestAdminService_CheckInAndPartnershipDelegation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)

	if _, err := env.adminSvc.CheckInPlayer(t.Context(), playerPrincipal, "night-1", "pl-ava"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for player check-in override, got %v", err)
	}

	if _, err := env.adminSvc.CheckInPlayer(t.Context(), adminPrincipal, "night-1", "pl-ava"); err != nil {
		t.Fatalf("admin check-in: %v", err)
	}
	if _, err := env.adminSvc.CheckInPlayer(t.Context(), adminPrincipal, "night-1", "pl-ben"); err != nil {
		t.Fatalf("admin check-in: %v", err)
	}

	p, err := env.adminSvc.CreatePartnership(t.Context(), adminPrincipal, "night-1", "pl-ava", "pl-ben")
	if err != nil {
		t.Fatalf("admin create partnership: %v", err)
	}
	if !p.Active {
		t.Fatalf("expected active partnership, got %+v", p)
	}

	if err := env.adminSvc.RemovePartnership(t.Context(), adminPrincipal, "night-1", "pl-ava"); err != nil {
		t.Fatalf("admin remove partnership: %v", err)
	}
	if err := env.adminSvc.CheckOutPlayer(t.Context(), adminPrincipal, "night-1", "pl-ben"); err != nil {
		t.Fatalf("admin check-out: %v", err)
	}
	if _, ok, err := env.checkins.GetActive(t.Context(), "night-1", "pl-ben"); err != nil || ok {
		t.Fatalf("expected player checked out, ok=%t err=%v", ok, err)
	}
}
