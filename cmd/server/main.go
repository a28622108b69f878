package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/ignite/fitness-api/internal/api"
	"github.com/ignite/fitness-api/internal/config"
	"github.com/ignite/fitness-api/internal/pkg/logger"
	"github.com/ignite/fitness-api/internal/ratelimit"
	"github.com/ignite/fitness-api/internal/recipes"
	"github.com/ignite/fitness-api/internal/repository/postgres"
	"github.com/ignite/fitness-api/internal/weather"
)

func main() {
	cfg, err := config.LoadFromEnv("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	logger.SetRedactPII(cfg.Logging.Redact())

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		pingCancel()
		log.Fatalf("Database unreachable: %v", err)
	}
	pingCancel()

	if err := postgres.Bootstrap(ctx, db); err != nil {
		log.Fatalf("Failed to bootstrap schema: %v", err)
	}
	log.Println("Database schema ready")

	// Rate limiter: Redis when configured, per-process fallback otherwise.
	var limiter ratelimit.Limiter
	if cfg.Redis.URL != "" {
		redisLimiter, err := ratelimit.NewRedisLimiterFromURL(
			cfg.Redis.URL, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
		if err != nil {
			log.Fatalf("Failed to connect rate limiter to Redis: %v", err)
		}
		defer redisLimiter.Close()
		limiter = redisLimiter
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
		log.Println("No Redis configured, rate limiting is per-process")
	}

	var weatherClient api.WeatherProvider
	if cfg.Weather.APIKey != "" {
		weatherClient = weather.NewClient(cfg.Weather)
	} else {
		log.Println("OPENWEATHER_API_KEY not set, weather routes will answer 502")
	}
	recipesClient := recipes.NewClient(cfg.Recipes)

	handlers := api.NewHandlers(
		postgres.NewContactRepo(db),
		postgres.NewProgramRepo(db),
		weatherClient,
		recipesClient,
	)
	server := api.NewServer(handlers, limiter)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
