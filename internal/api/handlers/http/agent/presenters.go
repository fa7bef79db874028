package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
)

// toSyncResponse keeps both lists as JSON arrays even when empty.
func toSyncResponse(resp domain.SyncResponse) domain.SyncResponse {
	if resp.Accepted == nil {
		resp.Accepted = []domain.ValidationRecord{}
	}
	if resp.Rejected == nil {
		resp.Rejected = []domain.Rejection{}
	}
	return resp
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		h.log(r).Info("request canceled", slog.String("path", r.URL.Path))
		return
	}

	h.log(r).Error("handler error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
