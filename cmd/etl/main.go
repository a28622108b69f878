// One-shot runner for the batch cleaning pipeline. Intended for cron or
// manual invocation; the server does not trigger runs.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/fitness-api/internal/config"
	"github.com/ignite/fitness-api/internal/etl"
	"github.com/ignite/fitness-api/internal/pkg/logger"
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}

	opts := []etl.Option{etl.WithBackupDir(cfg.ETL.BackupDir)}

	if cfg.Redis.URL != "" {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		client := redis.NewClient(redisOpts)
		defer client.Close()
		opts = append(opts, etl.WithRedisLock(client))
	}

	if cfg.ETL.S3Bucket != "" {
		store, err := etl.NewS3ArtifactStore(ctx, cfg.ETL.S3Bucket, cfg.ETL.S3Region)
		if err != nil {
			log.Fatalf("Failed to init S3 artifact store: %v", err)
		}
		opts = append(opts, etl.WithArtifactStore(store))
		log.Printf("Mirroring backup artifacts to s3://%s", cfg.ETL.S3Bucket)
	}

	pipeline := etl.New(db, opts...)

	stats, err := pipeline.Run(ctx)
	if err != nil {
		if errors.Is(err, etl.ErrRunInProgress) {
			log.Fatal("Another cleaning run is in progress, try again later")
		}
		log.Fatalf("Cleaning run failed: %v", err)
	}

	fmt.Printf("Run %s finished at %s\n", stats.RunID, stats.Timestamp.Format(time.RFC3339))
	fmt.Printf("  contacts: %d -> %d (%d removed)\n",
		stats.Contacts.Original, stats.Contacts.Cleaned, stats.Contacts.Removed)
	fmt.Printf("  programs: %d -> %d (%d removed)\n",
		stats.Programs.Original, stats.Programs.Cleaned, stats.Programs.Removed)
}
