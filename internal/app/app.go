package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/courtside/league-night/internal/config"
	"github.com/courtside/league-night/internal/domain/checkin"
	"github.com/courtside/league-night/internal/domain/event"
	"github.com/courtside/league-night/internal/domain/match"
	"github.com/courtside/league-night/internal/domain/night"
	"github.com/courtside/league-night/internal/domain/partnership"
	"github.com/courtside/league-night/internal/domain/player"
	"github.com/courtside/league-night/internal/domain/schedule"
	"github.com/courtside/league-night/internal/infrastructure/account/roster"
	"github.com/courtside/league-night/internal/infrastructure/events"
	"github.com/courtside/league-night/internal/infrastructure/notify"
	"github.com/courtside/league-night/internal/infrastructure/repository/memory"
	"github.com/courtside/league-night/internal/infrastructure/repository/postgres"
	"github.com/courtside/league-night/internal/interfaces/httpapi"
	idgen "github.com/courtside/league-night/internal/platform/id"
	"github.com/courtside/league-night/internal/platform/logging"
	"github.com/courtside/league-night/internal/platform/resilience"
	"github.com/courtside/league-night/internal/usecase"
)

// NewHTTPServer wires repositories, services, and the HTTP router. The
// returned cleanup drains the event dispatcher and closes the database;
// call it after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	zlog := logging.Default()

	var (
		nightRepo       night.Repository
		playerRepo      player.Repository
		checkinRepo     checkin.Repository
		partnershipRepo partnership.Repository
		requestRepo     partnership.RequestRepository
		matchRepo       match.Repository
	)

	cleanups := make([]func(), 0, 2)
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	if cfg.DBURL == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		nightRepo = memory.NewNightRepository()
		playerRepo = memory.NewPlayerRepository(memory.SeedPlayers())
		checkinRepo = memory.NewCheckInRepository()
		partnershipRepo = memory.NewPartnershipRepository()
		requestRepo = memory.NewPartnerRequestRepository()
		matchRepo = memory.NewMatchRepository()
	} else {
		db, err := openDatabase(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = db.Close() })

		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
		}

		logger.Info("using postgres repositories", "database", dbNameFromURL(cfg.DBURL))
		nightRepo = postgres.NewNightRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		checkinRepo = postgres.NewCheckInRepository(db)
		partnershipRepo = postgres.NewPartnershipRepository(db)
		requestRepo = postgres.NewPartnerRequestRepository(db)
		matchRepo = postgres.NewMatchRepository(db)
	}

	var publisher event.Publisher = events.NopPublisher{}
	if cfg.PushEnabled {
		push := notify.NewPushPublisher(notify.PushConfig{
			WebhookURL: cfg.PushWebhookURL,
			AuthToken:  cfg.PushAuthToken,
			Timeout:    cfg.PushTimeout,
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          true,
				FailureThreshold: cfg.PushCircuitFailureCount,
				OpenTimeout:      cfg.PushCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.PushCircuitHalfOpenMaxReq,
			},
		}, zlog)

		dispatcher, err := events.NewDispatcher(cfg.EventWorkers, cfg.EventHandleTimeout, zlog, push)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("build event dispatcher: %w", err)
		}
		cleanups = append(cleanups, dispatcher.Close)
		publisher = dispatcher
	}

	locks := usecase.NewInstanceLocks()
	gen := idgen.NewRandomGenerator()
	seed := cfg.TiebreakSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tiebreak := schedule.NewRandomTiebreak(seed)

	template := night.Template{
		Weekday:           cfg.NightWeekday,
		StartHour:         cfg.NightStartHour,
		StartMinute:       cfg.NightStartMinute,
		CourtLabels:       cfg.NightCourtLabels,
		AutoAssignEnabled: cfg.AutoAssignDefault,
	}
	if err := template.Validate(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("night template: %w", err)
	}

	allocatorSvc := usecase.NewAllocatorService(nightRepo, partnershipRepo, matchRepo, checkinRepo, tiebreak, gen, locks, publisher, zlog)
	nightSvc := usecase.NewNightService(nightRepo, template, gen, locks)
	checkinSvc := usecase.NewCheckInService(nightRepo, playerRepo, checkinRepo, partnershipRepo, allocatorSvc, gen, locks, publisher)
	partnershipSvc := usecase.NewPartnershipService(checkinRepo, partnershipRepo, requestRepo, allocatorSvc, gen, locks, publisher)
	matchSvc := usecase.NewMatchService(matchRepo, partnershipRepo, allocatorSvc, locks, publisher, zlog)
	adminSvc := usecase.NewAdminService(nightRepo, matchRepo, partnershipRepo, checkinSvc, partnershipSvc, allocatorSvc, gen, locks, publisher, zlog)

	var verifier httpapi.TokenVerifier
	if cfg.AccountEnabled {
		verifier = roster.NewClient(
			&http.Client{Timeout: cfg.AccountTimeout},
			cfg.AccountBaseURL,
			cfg.AccountIntrospectPath,
			logger,
		)
	} else {
		logger.Info("using static token verifier", "reason", "ACCOUNT_ENABLED=false")
		verifier = roster.StaticVerifier{}
	}

	handler := httpapi.NewHandler(nightSvc, checkinSvc, partnershipSvc, allocatorSvc, matchSvc, adminSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}
