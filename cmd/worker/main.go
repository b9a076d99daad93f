package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/job-queue/pkg/broker"
	"github.com/abdul-hamid-achik/job-queue/pkg/middleware"
	"github.com/abdul-hamid-achik/job-queue/pkg/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"socialgram/internal/config"
	"socialgram/internal/db"
	"socialgram/internal/logger"
	"socialgram/internal/mediapath"
	"socialgram/internal/metrics"
	"socialgram/internal/processor"
	"socialgram/internal/processor/image"
	"socialgram/internal/storage"
	"socialgram/internal/tracing"
	sgworker "socialgram/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Init(cfg.LogLevel)
	log := logger.Default()

	log.Info("configuration loaded", "media_root", cfg.MediaRoot)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, &tracing.Config{
		ServiceName:    "socialgram-worker",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TracingEnabled,
		SampleRate:     cfg.TracingSampleRate,
	})
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	zerologger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	log.Info("connecting to database")
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("database connected")

	log.Info("connecting to redis")
	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse redis url: %w", err)
	}
	redisClient := redis.NewClient(redisOpt)
	defer func() { _ = redisClient.Close() }()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	b := broker.NewRedisStreamsBroker(redisClient,
		broker.WithWorkerID(fmt.Sprintf("worker-%d", os.Getpid())),
	)
	log.Info("broker initialized")

	queries := db.New(pool)

	metrics.SetAppInfo("1.0.0", cfg.Environment, "worker")
	metrics.SetWorkerPoolSize(cfg.WorkerConcurrency)

	log.Info("registering processors")
	procRegistry := processor.NewRegistry()
	procCfg := processor.DefaultConfig()
	procCfg.Quality = cfg.JPEGQuality
	procRegistry.Register("normalize", image.NewNormalizeProcessor(procCfg))
	procRegistry.Register("thumbnail", image.NewThumbnailProcessor(procCfg))
	log.Info("processor registry ready", "count", len(procRegistry.List()))

	deps := &sgworker.Dependencies{
		Queries:               queries,
		Store:                 storage.NewLocal(),
		Registry:              procRegistry,
		Paths:                 mediapath.NewResolver(cfg.MediaRoot),
		AvatarMaxDimension:    cfg.AvatarMaxDimension,
		ThumbnailMaxDimension: cfg.ThumbnailMaxDimension,
		JPEGQuality:           cfg.JPEGQuality,
	}

	log.Info("registering job handlers")
	registry := worker.NewRegistry()
	_ = registry.Register(sgworker.JobTypeProcessAvatar, sgworker.AvatarHandler(deps))
	_ = registry.Register(sgworker.JobTypeProcessGallery, sgworker.GalleryHandler(deps))
	_ = registry.Register(sgworker.JobTypeProcessPostImage, sgworker.PostImageHandler(deps))
	_ = registry.Register(sgworker.JobTypeProcessCommentImage, sgworker.CommentImageHandler(deps))
	_ = registry.Register(sgworker.JobTypeDeleteMedia, sgworker.DeleteMediaHandler(deps))
	_ = registry.Register(sgworker.JobTypeTempSweep, sgworker.TempSweepHandler(deps))
	log.Info("handlers registered", "count", len(registry.Types()))

	registry.Use(
		middleware.RecoveryMiddleware(zerologger),
		middleware.LoggingMiddleware(zerologger),
		middleware.TimeoutMiddleware(cfg.JobTimeout),
		middleware.MetricsMiddleware(metrics.NewPrometheusCollector()),
	)

	log.Info("creating worker pool", "concurrency", cfg.WorkerConcurrency)

	workerPool := worker.NewPool(b, registry,
		worker.WithConcurrency(cfg.WorkerConcurrency),
		worker.WithPoolQueues([]string{"default"}),
		worker.WithPoolPollInterval(time.Second),
		worker.WithShutdownTimeout(30*time.Second),
		worker.WithPoolLogger(zerologger),
	)

	metricsPort := os.Getenv("METRICS_PORT")
	if metricsPort == "" {
		metricsPort = "9090"
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	metricsServer := &http.Server{
		Addr:    ":" + metricsPort,
		Handler: metricsMux,
	}

	go func() {
		log.Info("metrics server starting", "port", metricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", "error", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	poolErr := make(chan error, 1)
	go func() {
		log.Info("starting worker pool")
		poolErr <- workerPool.Start(ctx)
	}()

	select {
	case err := <-poolErr:
		if err != nil && err != context.Canceled {
			return fmt.Errorf("worker pool error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("shutdown signal received", "signal", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := workerPool.Stop(shutdownCtx); err != nil {
			log.Error("error stopping pool", "error", err)
		}

		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error("error stopping metrics server", "error", err)
		}

		cancel()
	}

	log.Info("worker pool stopped gracefully")
	return nil
}
