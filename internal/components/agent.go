package components

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sidoine1991/agent-position-sub003/internal/capture"
	"github.com/Sidoine1991/agent-position-sub003/internal/config"
	"github.com/Sidoine1991/agent-position-sub003/internal/geofence"
	"github.com/Sidoine1991/agent-position-sub003/internal/metrics"
	"github.com/Sidoine1991/agent-position-sub003/internal/offline"
	"github.com/Sidoine1991/agent-position-sub003/internal/syncer"
)

// AgentComponents is the field client: durable queue, capture, sync.
type AgentComponents struct {
	logger      *slog.Logger
	cfg         config.AgentConfig
	db          *sql.DB
	writer      *offline.Worker
	Store       *offline.Store
	Transport   *syncer.HTTPTransport
	Coordinator *syncer.Coordinator
	Recorder    *capture.Recorder
}

func InitAgent(ctx context.Context, cfg *config.AgentConfig, logger *slog.Logger) (*AgentComponents, error) {
	metrics.Register()

	db, err := offline.Open(ctx, offline.Config{Path: cfg.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open offline store: %w", err)
	}
	writer := offline.NewWorker(db)
	store := offline.NewStore(db, writer)

	transport := syncer.NewHTTPTransport(cfg.ServerURL, cfg.Token, cfg.RequestTimeout)
	coordinator := syncer.NewCoordinator(logger, store, transport, syncer.Options{
		AgentID:     cfg.AgentID,
		BatchSize:   cfg.BatchSize,
		MaxAttempts: cfg.MaxAttempts,
	})
	recorder := capture.NewRecorder(logger, store, cfg.AgentID, geofence.Policy{AllowMissingReference: cfg.AllowMissingReference})

	return &AgentComponents{
		logger:      logger,
		cfg:         *cfg,
		db:          db,
		writer:      writer,
		Store:       store,
		Transport:   transport,
		Coordinator: coordinator,
		Recorder:    recorder,
	}, nil
}

// RefreshReference pulls the agent's reference from the server. Failures are
// logged and leave the cached copy in place.
func (c *AgentComponents) RefreshReference(ctx context.Context) {
	ref, err := c.Recorder.RefreshReference(ctx, c.Transport)
	if err != nil {
		c.logger.Warn("reference refresh failed", slog.Any("error", err))
		return
	}
	if ref == nil {
		c.logger.Info("no reference location configured on server")
		return
	}
	c.logger.Info("reference location refreshed",
		slog.Float64("lat", ref.Latitude),
		slog.Float64("lng", ref.Longitude),
		slog.Float64("tolerance_m", ref.ToleranceRadiusMeters),
	)
}

// RunDaemon flushes on a timer, on reconnect and once at start, until ctx is
// done.
func (c *AgentComponents) RunDaemon(ctx context.Context) error {
	scheduler := syncer.NewScheduler(c.logger, c.Coordinator, c.cfg.FlushInterval, nil)
	prober := syncer.NewProber(c.logger, c.cfg.ServerURL, c.cfg.ProbeInterval, func() {
		scheduler.OnConnectivityRestored()
		go c.RefreshReference(ctx)
	})

	var metricsSrv *http.Server
	if c.cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: c.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				c.logger.Error("metrics server failed", slog.Any("error", err))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		prober.Run(ctx)
	}()

	scheduler.OnManualTrigger()
	scheduler.Run(ctx)
	<-done

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	}
	return nil
}

func (c *AgentComponents) Close() {
	c.writer.Close()
	if err := c.db.Close(); err != nil {
		c.logger.Error("offline store close failed", slog.Any("error", err))
	}
}
