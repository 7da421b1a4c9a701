package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/courtside/league-night/internal/domain/checkin"
	"github.com/courtside/league-night/internal/domain/night"
	"github.com/courtside/league-night/internal/domain/partnership"
	"github.com/courtside/league-night/internal/domain/schedule"
	"github.com/courtside/league-night/internal/infrastructure/events"
	"github.com/courtside/league-night/internal/infrastructure/repository/memory"
	"github.com/courtside/league-night/internal/platform/logging"
)

type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n), nil
}

// testEnv wires every service against the in-memory repositories with a
// frozen clock, a recording publisher and the stable tiebreak.
type testEnv struct {
	nights       *memory.NightRepository
	players      *memory.PlayerRepository
	checkins     *memory.CheckInRepository
	partnerships *memory.PartnershipRepository
	requests     *memory.PartnerRequestRepository
	matches      *memory.MatchRepository
	recorder     *events.Recorder
	clock        time.Time

	nightSvc   *NightService
	checkinSvc *CheckInService
	partnerSvc *PartnershipService
	allocator  *AllocatorService
	matchSvc   *MatchService
	adminSvc   *AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		nights:       memory.NewNightRepository(),
		players:      memory.NewPlayerRepository(memory.SeedPlayers()),
		checkins:     memory.NewCheckInRepository(),
		partnerships: memory.NewPartnershipRepository(),
		requests:     memory.NewPartnerRequestRepository(),
		matches:      memory.NewMatchRepository(),
		recorder:     events.NewRecorder(),
		clock:        time.Date(2026, 2, 12, 20, 0, 0, 0, time.UTC),
	}

	locks := NewInstanceLocks()
	gen := &seqIDGenerator{prefix: "id"}
	logger := logging.NewNop()
	now := func() time.Time { return env.clock }

	template := night.Template{
		Weekday:           time.Thursday,
		StartHour:         19,
		StartMinute:       0,
		CourtLabels:       []string{"Court 1", "Court 2", "Court 3"},
		AutoAssignEnabled: true,
	}

	env.allocator = NewAllocatorService(env.nights, env.partnerships, env.matches, env.checkins, schedule.StableTiebreak{}, gen, locks, env.recorder, logger)
	env.allocator.now = now

	env.nightSvc = NewNightService(env.nights, template, gen, locks)
	env.nightSvc.now = now

	env.checkinSvc = NewCheckInService(env.nights, env.players, env.checkins, env.partnerships, env.allocator, gen, locks, env.recorder)
	env.checkinSvc.now = now

	env.partnerSvc = NewPartnershipService(env.checkins, env.partnerships, env.requests, env.allocator, gen, locks, env.recorder)
	env.partnerSvc.now = now

	env.matchSvc = NewMatchService(env.matches, env.partnerships, env.allocator, locks, env.recorder, logger)
	env.matchSvc.now = now

	env.adminSvc = NewAdminService(env.nights, env.matches, env.partnerships, env.checkinSvc, env.partnerSvc, env.allocator, gen, locks, env.recorder, logger)
	env.adminSvc.now = now

	return env
}

// seedNight stores an active instance directly, bypassing the template path.
func (env *testEnv) seedNight(t *testing.T, id string, courtCount int, autoAssign bool) night.Instance {
	t.Helper()

	courts := make([]night.Court, 0, courtCount)
	for i := 1; i <= courtCount; i++ {
		courts = append(courts, night.Court{Number: i, Label: fmt.Sprintf("Court %d", i)})
	}

	instance := night.Instance{
		ID:                id,
		Date:              time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC),
		Status:            night.StatusActive,
		Courts:            courts,
		AutoAssignEnabled: autoAssign,
		StartsAt:          time.Date(2026, 2, 12, 19, 0, 0, 0, time.UTC),
		CreatedAt:         env.clock,
	}
	if err := env.nights.Create(context.Background(), instance); err != nil {
		t.Fatalf("seed night: %v", err)
	}

	return instance
}

func (env *testEnv) seedCheckIns(t *testing.T, nightID string, playerIDs ...string) {
	t.Helper()

	for _, playerID := range playerIDs {
		item := checkin.CheckIn{
			ID:          "ci-" + playerID,
			NightID:     nightID,
			PlayerID:    playerID,
			Active:      true,
			CheckedInAt: env.clock,
		}
		if err := env.checkins.Create(context.Background(), item); err != nil {
			t.Fatalf("seed check-in for %s: %v", playerID, err)
		}
	}
}

// seedPartnership stores a confirmed partnership directly, without running
// the handshake or triggering the allocator.
func (env *testEnv) seedPartnership(t *testing.T, id, nightID, player1ID, player2ID string) partnership.Partnership {
	t.Helper()

	p := partnership.Partnership{
		ID:          id,
		NightID:     nightID,
		Player1ID:   player1ID,
		Player2ID:   player2ID,
		Active:      true,
		ConfirmedAt: env.clock,
	}
	if err := env.partnerships.Create(context.Background(), p); err != nil {
		t.Fatalf("seed partnership %s: %v", id, err)
	}

	return p
}
