package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kitmedia/creator-planner/internal/analytics"
	"github.com/kitmedia/creator-planner/internal/api"
	"github.com/kitmedia/creator-planner/internal/cache"
	"github.com/kitmedia/creator-planner/internal/config"
	"github.com/kitmedia/creator-planner/internal/notify"
	"github.com/kitmedia/creator-planner/internal/planner"
	"github.com/kitmedia/creator-planner/internal/repository/postgres"
	planservice "github.com/kitmedia/creator-planner/internal/service/plan"
	"github.com/kitmedia/creator-planner/internal/service/planning"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("Creator Planner server starting")

	// Load configuration
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	// Open Postgres
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		pingCancel()
		log.Fatalf("Database ping failed: %v", err)
	}
	pingCancel()
	log.Println("Database connected")

	// Redis leaderboard cache (optional)
	var leaderboardCache analytics.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed (%s): %v — leaderboard cache disabled", cfg.Redis.Addr, err)
			redisClient.Close()
		} else {
			leaderboardCache = cache.NewRedis(redisClient, cfg.Redis.LeaderboardTTL())
			log.Printf("Redis connected: %s (leaderboard cache enabled)", cfg.Redis.Addr)
		}
		pingCancel()
	}

	// Confirmation mailer (optional)
	var notifier planservice.Notifier
	if cfg.Notify.Enabled && cfg.Notify.Sender != "" {
		mailer, err := notify.NewMailer(context.Background(), cfg.Notify)
		if err != nil {
			log.Printf("Warning: SES mailer init failed: %v — confirmation emails disabled", err)
		} else {
			notifier = mailer
			log.Printf("Confirmation emails enabled (sender %s)", cfg.Notify.Sender)
		}
	}

	// Wire repositories and services
	params := planner.Params{
		DefaultCVR:         cfg.Planner.DefaultCVR,
		MinTier1Clicks:     cfg.Planner.MinTier1Clicks,
		Tier3Baseline:      cfg.Planner.Tier3Baseline,
		Tier4Damping:       cfg.Planner.Tier4Damping,
		DemographicFloor:   cfg.Planner.DemographicFloor,
		DefaultHorizonDays: cfg.Planner.DefaultHorizonDays,
	}

	planningSvc := planning.NewService(postgres.NewCreatorRepo(db), params, cfg.Analytics.LookbackDays)
	planSvc := planservice.NewService(postgres.NewPlanRepo(db), notifier)
	analyticsSvc := analytics.NewService(postgres.NewLeaderboardRepo(db), leaderboardCache)

	handlers := api.NewHandlers(planningSvc, planSvc, analyticsSvc)
	server := api.NewServer(handlers)

	// Start serving
	addr := fmt.Sprintf("%s:%d", host, port)
	go func() {
		log.Printf("API server listening on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}
	log.Println("Server stopped")
}
