// Package main runs the leaderboard snapshot job: it reads ledger-derived
// point totals from Postgres and writes the top-N snapshot to Redis on a
// fixed interval, or once with -once.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/olybars/olybars/internal/config"
	"github.com/olybars/olybars/internal/jobs"
	"github.com/olybars/olybars/internal/league"
	"github.com/olybars/olybars/internal/middleware"
	"github.com/olybars/olybars/internal/tracing"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	once := flag.Bool("once", false, "run a single rebuild and exit")
	flag.Parse()

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config error:", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	// A standalone job runner only makes sense against shared stores.
	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required for the snapshot job")
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error("REDIS_ADDR is required for the snapshot job")
		os.Exit(1)
	}

	tracer, err := tracing.NewProvider(tracing.Config{
		ServiceName:  "olybars-snapshot",
		Enabled:      cfg.TracingEnabled,
		Environment:  cfg.Env,
		ExporterType: cfg.TracingExporter,
		OTLPEndpoint: cfg.TracingOTLPEndpoint,
		SamplingRate: cfg.TracingSamplingRate,
		InsecureMode: cfg.Env != "production",
	})
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	aggregator := league.NewAggregator(
		league.NewPostgresUserStore(db),
		league.NewRedisSnapshotStore(redisClient),
		nil,
		logger,
	)

	jobMetrics := jobs.NewMetrics()
	scheduler := jobs.NewScheduler(jobs.JobFunc{
		JobName: jobs.JobTypeSnapshotRebuild,
		Fn:      aggregator.Rebuild,
	}, cfg.SnapshotInterval, logger, jobMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once {
		runCtx, runCancel := context.WithTimeout(ctx, time.Minute)
		defer runCancel()
		if err := scheduler.RunOnce(runCtx); err != nil {
			os.Exit(1)
		}
		shutdownTracer(tracer, logger)
		return
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down snapshot job...")
		cancel()
	}()

	scheduler.Start(ctx)
	shutdownTracer(tracer, logger)
}

func shutdownTracer(tracer *tracing.Provider, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tracer.Shutdown(ctx); err != nil {
		logger.Error("tracer shutdown failed", "error", err)
	}
}
