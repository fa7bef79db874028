package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type References interface {
	Put(ctx context.Context, agentID string, req domain.UpsertReferenceRequest) (*domain.ReferenceLocation, error)
	Get(ctx context.Context, agentID string) (*domain.ReferenceLocation, error)
	Delete(ctx context.Context, agentID string) error
}

type Validations interface {
	GetValidation(ctx context.Context, clientEventID uuid.UUID) (*domain.ValidationRecord, error)
}

type Handler struct {
	logger      *slog.Logger
	References  References
	Validations Validations
}

func NewHandler(logger *slog.Logger, references References, validations Validations) *Handler {
	return &Handler{
		logger:      logger,
		References:  references,
		Validations: validations,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

// ReferencePut expects the body already bound by middleware.BindJSON.
func (h *Handler) ReferencePut(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	agentID := chi.URLParam(r, "agentId")
	l.Debug("ReferencePut", slog.String("agent_id", agentID), slog.String("remote", r.RemoteAddr))

	req, ok := middleware.Bound[domain.UpsertReferenceRequest](r.Context())
	if !ok {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	ref, err := h.References.Put(r.Context(), agentID, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("reference location updated",
		slog.String("agent_id", agentID),
		slog.Float64("lat", ref.Latitude),
		slog.Float64("lng", ref.Longitude),
		slog.Float64("tolerance_m", ref.ToleranceRadiusMeters),
	)
	h.writeJSON(w, http.StatusOK, toReferenceResponse(ref))
}

func (h *Handler) ReferenceGet(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentId")
	h.log(r).Debug("ReferenceGet", slog.String("agent_id", agentID))

	ref, err := h.References.Get(r.Context(), agentID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toReferenceResponse(ref))
}

func (h *Handler) ReferenceDelete(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	agentID := chi.URLParam(r, "agentId")

	if err := h.References.Delete(r.Context(), agentID); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("reference location deleted", slog.String("agent_id", agentID))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ValidationGet(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	idStr := chi.URLParam(r, "clientEventId")
	id, err := uuid.Parse(idStr)
	if err != nil {
		l.Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	rec, err := h.Validations.GetValidation(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}
