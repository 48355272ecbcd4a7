package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/gdpmap/internal/config"
	"github.com/JonMunkholm/gdpmap/internal/core"
	"github.com/JonMunkholm/gdpmap/internal/countries"
	"github.com/JonMunkholm/gdpmap/internal/database"
	"github.com/JonMunkholm/gdpmap/internal/logging"
	"github.com/JonMunkholm/gdpmap/internal/render"
	"github.com/JonMunkholm/gdpmap/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	closeLog, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	info, err := config.LoadGDPInfo(cfg.Render.GDPInfoFile)
	if err != nil {
		slog.Error("failed to load gdpinfo", "file", cfg.Render.GDPInfoFile, "error", err)
		os.Exit(1)
	}

	codes, err := countries.Open(cfg.Render.CountriesFile)
	if err != nil {
		slog.Error("failed to load country codes", "file", cfg.Render.CountriesFile, "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"gdp_file", info.GDPFile,
		"countries", len(codes),
		"render_max_concurrent", cfg.Render.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"history_enabled", cfg.Database.Enabled(),
	)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	var history core.HistoryStore
	if cfg.Database.Enabled() {
		pool, err := database.Open(jobCtx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		store := core.NewPgHistoryStore(pool)
		if err := store.EnsureSchema(jobCtx); err != nil {
			slog.Error("failed to create render history table", "error", err)
			os.Exit(1)
		}
		history = store

		go core.StartHistoryPruner(jobCtx, store, core.PruneConfig{
			Retention: cfg.Database.HistoryRetention,
			Interval:  cfg.Database.HistoryPruneInterval,
		})
	}

	service := core.NewService(render.NewSVGRenderer(), history)
	limiter := core.NewRenderLimiter(cfg.Render.MaxConcurrent, cfg.Render.MaxWait)
	server := web.NewServer(service, cfg, info, codes, limiter)

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := limiter.Status(); status.Active > 0 {
			slog.Info("waiting for renders to complete", "active", status.Active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("renders did not complete in time", "error", err)
			} else {
				slog.Info("all renders completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-shutdownDone
	slog.Info("server stopped")
}
