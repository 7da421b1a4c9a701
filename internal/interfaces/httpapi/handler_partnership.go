package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/courtside/league-night/internal/usecase"
)

func (h *Handler) SendPartnerRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendPartnerRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req sendPartnerRequestRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	nightID := r.PathValue("nightID")
	created, err := h.partnershipService.SendRequest(ctx, nightID, principal.UserID, req.RequestedID)
	if err != nil {
		h.logger.WarnContext(ctx, "send partner request failed",
			"night_id", nightID,
			"requester_id", principal.UserID,
			"requested_id", req.RequestedID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, partnerRequestToDTO(created))
}

func (h *Handler) AcceptPartnerRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptPartnerRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	nightID := r.PathValue("nightID")
	requestID := r.PathValue("requestID")
	p, err := h.partnershipService.AcceptRequest(ctx, nightID, requestID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "accept partner request failed",
			"night_id", nightID,
			"request_id", requestID,
			"acceptor_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, partnershipToDTO(p))
}

func (h *Handler) RejectPartnerRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RejectPartnerRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	nightID := r.PathValue("nightID")
	requestID := r.PathValue("requestID")
	if err := h.partnershipService.RejectRequest(ctx, nightID, requestID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "reject partner request failed",
			"night_id", nightID,
			"request_id", requestID,
			"rejecter_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *Handler) RemoveMyPartnership(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveMyPartnership")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	nightID := r.PathValue("nightID")
	if err := h.partnershipService.RemovePartnership(ctx, nightID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "remove partnership failed",
			"night_id", nightID,
			"player_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

// CreateMatchesNow runs one allocation pass on demand. Any checked-in player
// may trigger it; the pass itself is idempotent.
func (h *Handler) CreateMatchesNow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatchesNow")
	defer span.End()

	if _, ok := principalFromContext(ctx); !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	nightID := r.PathValue("nightID")
	result, err := h.allocatorService.CreateMatchesNow(ctx, nightID)
	if err != nil {
		h.logger.WarnContext(ctx, "create matches failed", "night_id", nightID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, allocationToDTO(result))
}
