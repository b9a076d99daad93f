package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialgram/internal/config"
	"socialgram/internal/logger"
	"socialgram/internal/mediapath"
	"socialgram/internal/storage"
	"socialgram/internal/worker"
)

func main() {
	daemon := flag.Bool("daemon", false, "keep running and sweep once a day at midnight UTC")
	flag.Parse()

	if err := run(*daemon); err != nil {
		slog.Error("reaper failed", "error", err)
		os.Exit(1)
	}
}

func run(daemon bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.LogLevel)
	log := logger.Default()

	deps := &worker.Dependencies{
		Store: storage.NewLocal(),
		Paths: mediapath.NewResolver(cfg.MediaRoot),
	}

	if !daemon {
		return sweepOnce(logger.WithLogger(context.Background(), log), deps)
	}

	log.Info("reaper daemon starting", "media_root", cfg.MediaRoot)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	for {
		wait := untilNextMidnightUTC(time.Now().UTC())
		log.Info("next sweep scheduled", "in", wait.String())

		select {
		case <-time.After(wait):
			if err := sweepOnce(logger.WithLogger(context.Background(), log), deps); err != nil {
				log.Error("sweep failed", "error", err)
			}
		case sig := <-shutdown:
			log.Info("shutdown signal received", "signal", sig)
			return nil
		}
	}
}

func sweepOnce(ctx context.Context, deps *worker.Dependencies) error {
	log := logger.FromContext(ctx)
	log.Info("starting temp sweep")
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	stats, err := deps.RunTempSweep(ctx)
	if err != nil {
		return fmt.Errorf("temp sweep failed: %w", err)
	}

	log.Info("temp sweep completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"deleted", stats.DeletedCount,
		"failed", stats.FailedCount,
	)
	return nil
}

func untilNextMidnightUTC(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return next.Sub(now)
}
