package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all environment-driven settings for the service.
type Config struct {
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	StagingBucket  string

	// Import pipeline knobs.
	ImportBatchSize      int
	LookupCacheTTL       time.Duration
	SessionRetention     time.Duration
	MarketplaceSyncEvery time.Duration
}

// Load reads configuration from the environment, applying development
// defaults everywhere except DATABASE_URL, which is required.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		RedisAddr:            envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              envInt("REDIS_DB", 0),
		MinioEndpoint:        envOr("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:       envOr("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:       envOr("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:          os.Getenv("MINIO_USE_SSL") == "true",
		StagingBucket:        envOr("IMPORT_STAGING_BUCKET", "import-staging"),
		ImportBatchSize:      envInt("IMPORT_BATCH_SIZE", 100),
		LookupCacheTTL:       envDuration("IMPORT_LOOKUP_CACHE_TTL", 5*time.Minute),
		SessionRetention:     envDuration("IMPORT_SESSION_RETENTION", 5*time.Minute),
		MarketplaceSyncEvery: envDuration("MARKETPLACE_SYNC_INTERVAL", 15*time.Minute),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.ImportBatchSize <= 0 {
		cfg.ImportBatchSize = 100
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
