package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Port          int
	MaxUploadSize int64
	BaseURL       string

	Environment string
	LogLevel    string

	DatabaseURL string
	RedisURL    string

	// MediaRoot is the directory every media kind lives under. Stored
	// url/thumbnail_url values are resolved against it.
	MediaRoot string

	WorkerConcurrency int
	JobTimeout        time.Duration
	MaxRetries        int

	AvatarMaxDimension    int
	ThumbnailMaxDimension int
	JPEGQuality           int

	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.Port = getEnvInt("PORT", 8080)
	cfg.MaxUploadSize = getEnvInt64("MAX_UPLOAD_SIZE", 20*1024*1024)

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	cfg.MediaRoot = getEnvString("MEDIA_ROOT", "media")
	if abs, aerr := filepath.Abs(cfg.MediaRoot); aerr == nil {
		cfg.MediaRoot = abs
	}

	cfg.WorkerConcurrency = getEnvInt("WORKER_CONCURRENCY", 4)
	cfg.JobTimeout, err = getEnvDuration("JOB_TIMEOUT", "2m")
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_TIMEOUT: %w", err)
	}
	cfg.MaxRetries = getEnvInt("MAX_RETRIES", 3)

	cfg.AvatarMaxDimension = getEnvInt("AVATAR_MAX_DIMENSION", 300)
	cfg.ThumbnailMaxDimension = getEnvInt("THUMBNAIL_MAX_DIMENSION", 150)
	cfg.JPEGQuality = getEnvInt("JPEG_QUALITY", 85)

	cfg.BaseURL = getEnvString("BASE_URL", "http://localhost:8080")
	cfg.Environment = getEnvString("ENVIRONMENT", "development")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	cfg.TracingEnabled = getEnvBool("TRACING_ENABLED", false)
	cfg.OTLPEndpoint = getEnvString("OTLP_ENDPOINT", "localhost:4317")
	cfg.TracingSampleRate = getEnvFloat("TRACING_SAMPLE_RATE", 1.0)

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return time.ParseDuration(value)
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.MaxUploadSize < 1 {
		return fmt.Errorf("invalid max upload size: %d", c.MaxUploadSize)
	}

	if c.WorkerConcurrency < 1 {
		return fmt.Errorf("invalid worker concurrency: %d", c.WorkerConcurrency)
	}

	if c.AvatarMaxDimension < 1 || c.ThumbnailMaxDimension < 1 {
		return fmt.Errorf("image bounds must be positive")
	}

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("invalid jpeg quality: %d", c.JPEGQuality)
	}

	return nil
}
