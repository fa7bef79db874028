package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/pkg/e"
)

type referenceResponse struct {
	AgentID               string    `json:"agent_id"`
	Latitude              float64   `json:"latitude"`
	Longitude             float64   `json:"longitude"`
	ToleranceRadiusMeters float64   `json:"tolerance_radius_meters"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func toReferenceResponse(ref *domain.ReferenceLocation) referenceResponse {
	return referenceResponse{
		AgentID:               ref.AgentID,
		Latitude:              ref.Latitude,
		Longitude:             ref.Longitude,
		ToleranceRadiusMeters: ref.ToleranceRadiusMeters,
		UpdatedAt:             ref.UpdatedAt,
	}
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	l.Error("handler error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	switch {
	case errors.Is(err, e.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, e.ErrInvalidAgentID):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid agent id"})
	case errors.Is(err, e.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid input"})
	case errors.Is(err, e.ErrConflict):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": "conflict"})
	default:
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
