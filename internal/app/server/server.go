package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"crewops/internal/domain/eligibility"
	"crewops/internal/domain/leave"
	"crewops/internal/domain/pilots"
	"crewops/internal/domain/roster"
	"crewops/internal/domain/users"
	"crewops/internal/platform/config"
	"crewops/internal/platform/db"
	"crewops/internal/platform/jobs"
	"crewops/internal/platform/metrics"
	"crewops/internal/transport/http/api"
	authhandler "crewops/internal/transport/http/handlers/auth"
	eligibilityhandler "crewops/internal/transport/http/handlers/eligibility"
	jobshandler "crewops/internal/transport/http/handlers/jobs"
	leavehandler "crewops/internal/transport/http/handlers/leave"
	pilotshandler "crewops/internal/transport/http/handlers/pilots"
	reportshandler "crewops/internal/transport/http/handlers/reports"
	"crewops/internal/transport/http/middleware"
)

func Run() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	anchor, err := time.Parse("2006-01-02", cfg.Fleet.RosterAnchorDate)
	if err != nil {
		log.Fatalf("invalid roster anchor date: %v", err)
	}
	calendar, err := roster.NewCalendar(anchor, cfg.Fleet.RosterAnchorNumber, cfg.Fleet.RosterAnchorYear)
	if err != nil {
		log.Fatalf("invalid roster anchor: %v", err)
	}

	engine := eligibility.NewService(eligibility.NewStore(pool))
	usersSvc := users.NewService(pool)
	pilotsSvc := pilots.NewService(pool)
	leaveSvc := leave.NewService(pool, engine, calendar)
	collector := metrics.New()

	jobsSvc := jobs.New(pool, engine, calendar)
	if cfg.BulkScanSchedule != "" {
		if err := jobsSvc.Start(cfg.BulkScanSchedule); err != nil {
			log.Fatalf("scheduler start failed: %v", err)
		}
		defer jobsSvc.Stop()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(usersSvc, cfg.JWTSecret).RegisterRoutes(r)
		pilotshandler.NewHandler(pilotsSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, collector).RegisterRoutes(r)
		eligibilityhandler.NewHandler(engine, collector).RegisterRoutes(r)
		reportshandler.NewHandler(engine).RegisterRoutes(r)
		jobshandler.NewHandler(jobsSvc).RegisterRoutes(r)
	})

	slog.Info("crewops server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
