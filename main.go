package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg := LoadConfig()
	logger := NewLogger(cfg.Debug)

	store, err := OpenStore(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("Failed to open %s store: %v", cfg.DBDriver, err)
		os.Exit(1)
	}
	defer store.Close()

	catalog := NewCatalog()
	loader := NewLoader(NewSource(cfg.DataSource, cfg.FetchTimeout), cfg.DualsFile(), store, catalog, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Serve straight away; pages show a loading state until the first load lands.
	go loader.Load(ctx)
	if cfg.RefreshInterval > 0 {
		logger.Info("🔁 Reloading data every %s", cfg.RefreshInterval)
		go loader.Watch(ctx, cfg.RefreshInterval)
	}

	a := &app{cfg: cfg, logger: logger, store: store, catalog: catalog, loader: loader}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Shutdown: %v", err)
		}
	}()

	logger.Info("🏆 MatAnalytics is running on http://localhost:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
