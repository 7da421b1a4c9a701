package httpapi

import (
	"fmt"
	"net/http"

	"github.com/courtside/league-night/internal/usecase"
)

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckIn")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	nightID := r.PathValue("nightID")
	item, err := h.checkinService.CheckIn(ctx, nightID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "check-in failed", "night_id", nightID, "player_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, checkinToDTO(item))
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckOut")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	nightID := r.PathValue("nightID")
	if err := h.checkinService.CheckOut(ctx, nightID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "check-out failed", "night_id", nightID, "player_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "checked_out"})
}
