package agent

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/middleware"
)

const maxSyncBodyBytes = 4 << 20

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Reconciler interface {
	Reconcile(ctx context.Context, agentID string, events []domain.CheckinEvent) (domain.SyncResponse, error)
}

type ReferenceProvider interface {
	GetReferenceLocation(ctx context.Context, agentID string) (*domain.ReferenceLocation, error)
}

type Handler struct {
	logger       *slog.Logger
	Reconciler   Reconciler
	References   ReferenceProvider
	maxBatchSize int
}

func NewHandler(logger *slog.Logger, reconciler Reconciler, references ReferenceProvider, maxBatchSize int) *Handler {
	return &Handler{
		logger:       logger,
		Reconciler:   reconciler,
		References:   references,
		maxBatchSize: maxBatchSize,
	}
}

func (h *Handler) SyncCheckins(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	agentID, ok := middleware.AgentIDFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req domain.SyncRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSyncBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.AgentID != agentID {
		l.Warn("agent mismatch", slog.String("token_agent", agentID), slog.String("body_agent", req.AgentID))
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "agent_id does not match token"})
		return
	}
	if len(req.Events) == 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "events must not be empty"})
		return
	}
	if h.maxBatchSize > 0 && len(req.Events) > h.maxBatchSize {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "too many events"})
		return
	}

	l.Debug("SyncCheckins", slog.String("agent_id", agentID), slog.Int("events", len(req.Events)))

	resp, err := h.Reconciler.Reconcile(r.Context(), agentID, req.Events)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toSyncResponse(resp))
}

func (h *Handler) MyReference(w http.ResponseWriter, r *http.Request) {
	agentID, ok := middleware.AgentIDFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	ref, err := h.References.GetReferenceLocation(r.Context(), agentID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if ref == nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "no reference location"})
		return
	}
	h.writeJSON(w, http.StatusOK, ref)
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}
