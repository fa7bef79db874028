package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sidoine1991/agent-position-sub003/internal/api/handlers/http/admin"
	"github.com/Sidoine1991/agent-position-sub003/internal/api/handlers/http/agent"
	"github.com/Sidoine1991/agent-position-sub003/internal/api/handlers/http/system"
	"github.com/Sidoine1991/agent-position-sub003/internal/config"
	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
	"github.com/Sidoine1991/agent-position-sub003/internal/middleware"
	"github.com/Sidoine1991/agent-position-sub003/internal/service"
)

const maxAdminBodyBytes = 64 << 10

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, systemHandler *system.Handler) *Server {
	adminHandler := admin.NewHandler(logger, svc.References, svc.Reconciliation)
	agentHandler := agent.NewHandler(logger, svc.Reconciliation, svc.Provider, cfg.Sync.MaxBatchSize)

	r := InitRouter(cfg, adminHandler, agentHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(cfg *config.Config, adminHandler *admin.Handler, agentHandler *agent.Handler, systemHandler *system.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	// request_id must be set before chi's Logger reads it
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.Auth.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Route("/agents/{agentId}/reference", func(rr chi.Router) {
				rr.With(middleware.BindJSON[domain.UpsertReferenceRequest](maxAdminBodyBytes)).Put("/", adminHandler.ReferencePut)
				rr.Get("/", adminHandler.ReferenceGet)
				rr.Delete("/", adminHandler.ReferenceDelete)
			})
			ar.Get("/validations/{clientEventId}", adminHandler.ValidationGet)
		})

		// AGENT
		api.Group(func(ag chi.Router) {
			ag.Use(middleware.AgentAuth(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, logger))
			ag.Use(middleware.Limit(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 5*time.Minute, logger))

			ag.Post("/sync/checkins", agentHandler.SyncCheckins)
			ag.Get("/agents/me/reference", agentHandler.MyReference)
		})

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
	})

	return r
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
