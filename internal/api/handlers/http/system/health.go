package system

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler reports 503 only when a required dependency is down. Optional
// ones (the cache and record queue) only degrade the reported status.
type Handler struct {
	logger   *slog.Logger
	required map[string]Pinger
	optional map[string]Pinger
}

func NewHandler(logger *slog.Logger, required, optional map[string]Pinger) *Handler {
	return &Handler{logger: logger, required: required, optional: optional}
}

func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	code := http.StatusOK
	status := "ok"
	checks := make(map[string]string, len(h.required)+len(h.optional))

	for name, dep := range h.required {
		if !h.ping(ctx, name, dep, checks) {
			code = http.StatusServiceUnavailable
			status = "down"
		}
	}
	for name, dep := range h.optional {
		if !h.ping(ctx, name, dep, checks) && code == http.StatusOK {
			status = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": status, "checks": checks})
}

func (h *Handler) ping(ctx context.Context, name string, dep Pinger, checks map[string]string) bool {
	if err := dep.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", slog.String("dependency", name), slog.Any("error", err))
		checks[name] = "down"
		return false
	}
	checks[name] = "ok"
	return true
}
