package core

// scheduler.go runs render history maintenance in the background.
//
// The pruner deletes history rows older than the retention period. It runs
// once on start and then every interval until its context is cancelled.
// Failures are logged and retried on the next tick; they never stop the
// server.

import (
	"context"
	"log/slog"
	"time"
)

// PruneConfig holds settings for the history pruner.
type PruneConfig struct {
	Retention time.Duration // Age after which records are deleted (default: 90 days)
	Interval  time.Duration // How often to run (default: 24h)
}

func (c PruneConfig) withDefaults() PruneConfig {
	if c.Retention <= 0 {
		c.Retention = 90 * 24 * time.Hour
	}
	if c.Interval <= 0 {
		c.Interval = 24 * time.Hour
	}
	return c
}

// StartHistoryPruner blocks, pruning store every cfg.Interval until ctx is
// cancelled. Run it in its own goroutine.
func StartHistoryPruner(ctx context.Context, store HistoryStore, cfg PruneConfig) {
	cfg = cfg.withDefaults()
	slog.Info("history pruner started",
		"retention", cfg.Retention.String(),
		"interval", cfg.Interval.String(),
	)

	pruneHistory(ctx, store, cfg.Retention)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("history pruner stopped")
			return
		case <-ticker.C:
			pruneHistory(ctx, store, cfg.Retention)
		}
	}
}

func pruneHistory(ctx context.Context, store HistoryStore, retention time.Duration) {
	start := time.Now()
	n, err := store.Prune(ctx, retention)
	if err != nil {
		slog.Error("history prune failed", "error", err)
		return
	}
	slog.Info("pruned render history",
		"records_deleted", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
