// Package main is the entry point for the OlyBars API server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/olybars/olybars/internal/api"
	"github.com/olybars/olybars/internal/auth"
	"github.com/olybars/olybars/internal/config"
	"github.com/olybars/olybars/internal/feed"
	"github.com/olybars/olybars/internal/health"
	"github.com/olybars/olybars/internal/jobs"
	"github.com/olybars/olybars/internal/league"
	"github.com/olybars/olybars/internal/middleware"
	"github.com/olybars/olybars/internal/profile"
	"github.com/olybars/olybars/internal/tracing"
	"github.com/olybars/olybars/internal/venue"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("OlyBars API Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config error:", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "summary", cfg.LogSummary())

	tracer, err := tracing.NewProvider(tracing.Config{
		ServiceName:  "olybars-api",
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

	// Metrics registry shared by all components.
	registry := prometheus.NewRegistry()
	httpMetrics := middleware.NewMetrics()
	feedMetrics := feed.NewMetrics()
	leagueMetrics := league.NewMetrics()
	jobMetrics := jobs.NewMetrics()
	for _, m := range []interface {
		Register(prometheus.Registerer) error
	}{httpMetrics, feedMetrics, leagueMetrics, jobMetrics} {
		if err := m.Register(registry); err != nil {
			logger.Error("failed to register metrics", "error", err)
			os.Exit(1)
		}
	}

	// Persistent stores. Without DATABASE_URL everything runs in memory,
	// which is the dev/test mode.
	var (
		venueRepo     venue.VenueRepository
		activityStore league.ActivityStore
		userStore     league.UserStore
		privateStore  profile.PrivateProfileStore
		publicStore   profile.PublicProfileStore
		dbChecker     api.HealthChecker
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		venueRepo = venue.NewPostgresVenueRepository(db)
		activityStore = league.NewPostgresActivityStore(db)
		userStore = league.NewPostgresUserStore(db)
		profileStore := profile.NewPostgresProfileStore(db)
		privateStore = profileStore
		publicStore = profileStore.PublicStore()
		dbChecker = health.NewDBChecker(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
		venueRepo = venue.NewInMemoryVenueRepository()
		leagueStore := league.NewInMemoryLeagueStore()
		activityStore = leagueStore
		userStore = leagueStore
		profileStore := profile.NewInMemoryProfileStore()
		privateStore = profileStore
		publicStore = profileStore.Public()
	}

	// Snapshot and rate-limit stores. Redis when configured, in-memory
	// otherwise.
	var (
		snapshotStore  league.SnapshotStore
		rateLimitStore middleware.RateLimitStore
		redisChecker   api.HealthChecker
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()

		snapshotStore = league.NewRedisSnapshotStore(redisClient)
		rateLimitStore = middleware.NewRedisRateLimitStore(redisClient, httpMetrics)
		redisChecker = health.NewRedisChecker(redisClient)
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory snapshot and rate-limit stores")
		snapshotStore = league.NewInMemorySnapshotStore()
		memStore := middleware.NewInMemoryRateLimitStore()
		rateLimitStore = memStore
		go func() {
			for range time.Tick(time.Minute) {
				memStore.Cleanup()
			}
		}()
	}

	// Services.
	feedService := feed.NewService(venueRepo, nil, logger, feedMetrics)
	ledger := league.NewLedger(activityStore, nil, logger, leagueMetrics)
	aggregator := league.NewAggregator(userStore, snapshotStore, nil, logger)
	syncer := profile.NewSyncer(publicStore, nil, logger)

	jwtService := auth.NewJWTServiceWithRotation(cfg.JWTSecret, cfg.JWTPreviousSecret)

	// Handlers.
	feedHandlers := api.NewFeedHandlers(feedService)
	activityHandlers := api.NewActivityHandlers(ledger)
	leagueHandlers := api.NewLeagueHandlers(userStore, snapshotStore, leagueMetrics)
	profileHandlers := api.NewProfileHandlers(privateStore, publicStore, syncer)
	healthHandlers := api.NewHealthHandlers(api.HealthHandlersConfig{
		DBChecker:    dbChecker,
		RedisChecker: redisChecker,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/feed", feedHandlers.GetFeed)
	mux.HandleFunc("/leaderboard", leagueHandlers.GetLeaderboard)
	mux.HandleFunc("/leaderboard/rank", leagueHandlers.GetRank)
	mux.HandleFunc("/profiles/", profileHandlers.HandleProfile)
	mux.HandleFunc("/health", healthHandlers.Health)
	mux.HandleFunc("/ready", healthHandlers.Ready)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Activity logging gets a tighter per-user limit than the global one.
	activityLimiter := middleware.RateLimiter(rateLimitStore, middleware.DefaultActivityLimit(), middleware.UserKeyFunc())
	mux.Handle("/activities", activityLimiter(http.HandlerFunc(activityHandlers.LogActivity)))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			ctx := middleware.SetErrorCode(r.Context(), api.ErrCodeNotFound)
			api.WriteError(w, ctx, http.StatusNotFound, api.ErrCodeNotFound, "The requested resource was not found")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"service":"olybars-api","version":"0.1.0"}`)); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	// Middleware chain, outermost first: RequestID -> Logging -> Metrics ->
	// Auth -> RateLimit -> Tracing -> routes. Auth runs before the rate
	// limiter so authenticated users get per-user buckets.
	var handler http.Handler = otelhttp.NewHandler(mux, "olybars-api")
	handler = middleware.RateLimiter(rateLimitStore, middleware.DefaultGlobalLimit(), middleware.UserKeyFunc())(handler)
	handler = auth.Middleware(jwtService)(handler)
	handler = middleware.InstrumentHTTP(httpMetrics)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// In single-process mode (no Redis) the snapshot job must run here:
	// an in-memory snapshot store is invisible to a separate job runner.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	if cfg.RedisAddr == "" {
		scheduler := jobs.NewScheduler(jobs.JobFunc{
			JobName: jobs.JobTypeSnapshotRebuild,
			Fn:      aggregator.Rebuild,
		}, cfg.SnapshotInterval, logger, jobMetrics)
		go scheduler.Start(jobCtx)
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancelJobs()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if err := tracer.Shutdown(ctx); err != nil {
		logger.Error("tracer shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
