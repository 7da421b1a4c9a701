package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/courtside/league-night/internal/usecase"
)

type Handler struct {
	nightService       *usecase.NightService
	checkinService     *usecase.CheckInService
	partnershipService *usecase.PartnershipService
	allocatorService   *usecase.AllocatorService
	matchService       *usecase.MatchService
	adminService       *usecase.AdminService
	logger             *slog.Logger
	validator          *validator.Validate
	now                func() time.Time
}

func NewHandler(
	nightService *usecase.NightService,
	checkinService *usecase.CheckInService,
	partnershipService *usecase.PartnershipService,
	allocatorService *usecase.AllocatorService,
	matchService *usecase.MatchService,
	adminService *usecase.AdminService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		nightService:       nightService,
		checkinService:     checkinService,
		partnershipService: partnershipService,
		allocatorService:   allocatorService,
		matchService:       matchService,
		adminService:       adminService,
		logger:             logger,
		validator:          validator.New(),
		now:                time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
