package usecase

import (
	"errors"
	"testing"

	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/domain/partnership"
)

func TestPartnershipService_SendRequest(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben")

	req, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-ava", "pl-ben")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	if req.Status != partnership.RequestPending {
		t.Fatalf("expected pending request, got %s", req.Status)
	}

	if got := env.recorder.ByType(event.TypePartnershipRequested); len(got) != 1 {
		t.Fatalf("expected one requested event, got %d", len(got))
	}
}

func TestPartnershipService_SendRequest_Rejections(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben", "pl-cora")

	if _, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-ava", "pl-ava"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self request, got %v", err)
	}

	// pl-dex never checked in tonight.
	if _, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-ava", "pl-dex"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for unchecked-in target, got %v", err)
	}

	if _, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-ava", "pl-ben"); err != nil {
		t.Fatalf("send request: %v", err)
	}
	// Duplicate in the opposite direction counts as the same pending pair.
	if _, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-ben", "pl-ava"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate pending request, got %v", err)
	}

	env.seedPartnership(t, "ps-1", "night-1", "pl-ava", "pl-hugo")
	if _, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-cora", "pl-ava"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for already-partnered target, got %v", err)
	}
}

func TestPartnershipService_AcceptRequest(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben", "pl-cora")

	req, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-ava", "pl-ben")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	// A second pending request naming pl-ben must die with the acceptance.
	other, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-cora", "pl-ben")
	if err != nil {
		t.Fatalf("send competing request: %v", err)
	}

	p, err := env.partnerSvc.AcceptRequest(t.Context(), "night-1", req.ID, "pl-ben")
	if err != nil {
		t.Fatalf("accept request: %v", err)
	}
	if !p.Active || p.Player1ID != "pl-ava" || p.Player2ID != "pl-ben" {
		t.Fatalf("unexpected partnership: %+v", p)
	}

	stored, ok, err := env.requests.GetByID(t.Context(), other.ID)
	if err != nil || !ok {
		t.Fatalf("reload competing request: ok=%t err=%v", ok, err)
	}
	if stored.Status != partnership.RequestRejected {
		t.Fatalf("expected competing request rejected, got %s", stored.Status)
	}

	if got := env.recorder.ByType(event.TypePartnershipConfirmed); len(got) != 1 {
		t.Fatalf("expected one confirmed event, got %d", len(got))
	}
}

func TestPartnershipService_AcceptRequest_OnlyRequestedPlayer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben", "pl-cora")

	req, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-ava", "pl-ben")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}

	if _, err := env.partnerSvc.AcceptRequest(t.Context(), "night-1", req.ID, "pl-cora"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-requested acceptor, got %v", err)
	}
	if _, err := env.partnerSvc.AcceptRequest(t.Context(), "night-1", req.ID, "pl-ava"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for requester self-accept, got %v", err)
	}
}

func TestPartnershipService_AcceptRequest_RechecksEligibility(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben", "pl-cora")

	req, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-ava", "pl-ben")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}

	// The requester pairs up with someone else while the request sits open.
	env.seedPartnership(t, "ps-1", "night-1", "pl-ava", "pl-cora")

	if _, err := env.partnerSvc.AcceptRequest(t.Context(), "night-1", req.ID, "pl-ben"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict when requester partnered meanwhile, got %v", err)
	}
}

func TestPartnershipService_RejectRequest(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben", "pl-cora")

	req, err := env.partnerSvc.SendRequest(t.Context(), "night-1", "pl-ava", "pl-ben")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}

	if err := env.partnerSvc.RejectRequest(t.Context(), "night-1", req.ID, "pl-cora"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for outsider, got %v", err)
	}

	if err := env.partnerSvc.RejectRequest(t.Context(), "night-1", req.ID, "pl-ben"); err != nil {
		t.Fatalf("reject request: %v", err)
	}

	if err := env.partnerSvc.RejectRequest(t.Context(), "night-1", req.ID, "pl-ben"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition for already-resolved request, got %v", err)
	}
}

func TestPartnershipService_RemovePartnership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedNight(t, "night-1", 2, true)
	env.seedCheckIns(t, "night-1", "pl-ava", "pl-ben")
	env.seedPartnership(t, "ps-1", "night-1", "pl-ava", "pl-ben")

	if err := env.partnerSvc.RemovePartnership(t.Context(), "night-1", "pl-ben"); err != nil {
		t.Fatalf("remove partnership: %v", err)
	}

	if _, ok, err := env.partnerships.GetActiveByPlayer(t.Context(), "night-1", "pl-ava"); err != nil || ok {
		t.Fatalf("expected partnership gone for both members, ok=%t err=%v", ok, err)
	}

	if err := env.partnerSvc.RemovePartnership(t.Context(), "night-1", "pl-ben"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition when no partnership exists, got %v", err)
	}
}
