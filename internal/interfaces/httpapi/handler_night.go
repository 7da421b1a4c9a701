package httpapi

import (
	"net/http"
)

// GetOrCreateTonight materializes tonight's instance on first access.
func (h *Handler) GetOrCreateTonight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOrCreateTonight")
	defer span.End()

	instance, err := h.nightService.GetOrCreateForDate(ctx, h.now())
	if err != nil {
		h.logger.WarnContext(ctx, "get or create tonight failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nightToDTO(instance))
}

func (h *Handler) GetNight(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNight")
	defer span.End()

	nightID := r.PathValue("nightID")
	instance, err := h.nightService.GetByID(ctx, nightID)
	if err != nil {
		h.logger.WarnContext(ctx, "get night failed", "night_id", nightID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nightToDTO(instance))
}

func (h *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetQueue")
	defer span.End()

	nightID := r.PathValue("nightID")
	snapshot, err := h.allocatorService.Snapshot(ctx, nightID)
	if err != nil {
		h.logger.WarnContext(ctx, "queue snapshot failed", "night_id", nightID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, queueSnapshotToDTO(snapshot))
}
