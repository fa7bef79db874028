package cmd

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Sidoine1991/agent-position-sub003/internal/components"
	"github.com/Sidoine1991/agent-position-sub003/internal/config"
)

// Run starts the reconciliation server and blocks until SIGINT or SIGTERM.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		components.SetupLogger("local").Error("load config failed", "err", err)
		return err
	}
	logger := components.SetupLogger(cfg.Env)

	comps, err := components.InitComponents(ctx, cfg, logger)
	if err != nil {
		logger.Error("could not init components", "err", err)
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := comps.HttpServer.Run(ctx); err != nil {
			logger.Error("http server failed", "err", err)
			stop()
		}
		logger.Info("http server stopped")
	}()

	if comps.Publisher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			comps.Publisher.Run(ctx)
		}()
	}

	<-ctx.Done()
	logger.Info("captured signal, initiating shutdown")

	wg.Wait()

	logger.Info("shutting down the services...")
	comps.ShutdownAll()
	logger.Info("gracefully shut down")

	return nil
}
