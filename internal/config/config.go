package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/SongSiQi-s47/smart-PDFandWord-extractor/internal/extract"
)

// Config is the service configuration, loaded from EXTRACTOR_*
// environment variables.
type Config struct {
	Port string

	// Auth. Empty disables bearer auth.
	APIKey string

	// Worker pool.
	Workers   int
	QueueSize int

	// Upload limit.
	MaxUploadBytes int64

	// Job retention.
	JobTTL time.Duration

	// Description segmentation limit, in runes.
	MaxCellLen int

	// Fallback binary for PDFs the native reader cannot handle.
	// Empty disables the fallback.
	PdftotextBin string

	// JSON logs by default; text for local runs.
	LogJSON bool
}

func Load() Config {
	cfg := Config{
		Port:           envOr("EXTRACTOR_PORT", "8080"),
		APIKey:         os.Getenv("EXTRACTOR_API_KEY"),
		Workers:        envInt("EXTRACTOR_WORKERS", 4),
		QueueSize:      envInt("EXTRACTOR_QUEUE_SIZE", 64),
		MaxUploadBytes: int64(envInt("EXTRACTOR_MAX_UPLOAD_MB", 50)) * 1024 * 1024,
		JobTTL:         envDuration("EXTRACTOR_JOB_TTL", time.Hour),
		MaxCellLen:     envInt("EXTRACTOR_MAX_CELL_LEN", extract.DefaultMaxCellLength),
		PdftotextBin:   "pdftotext",
		LogJSON:        envBool("EXTRACTOR_LOG_JSON", true),
	}
	// Setting the variable to an empty string disables the fallback,
	// so plain envOr does not fit here.
	if v, ok := os.LookupEnv("EXTRACTOR_PDFTOTEXT"); ok {
		cfg.PdftotextBin = v
	}
	return cfg
}

func (c Config) Validate() error {
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue size must be positive, got %d", c.QueueSize)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("upload limit must be positive, got %d", c.MaxUploadBytes)
	}
	if c.JobTTL <= 0 {
		return fmt.Errorf("job TTL must be positive, got %s", c.JobTTL)
	}
	if c.MaxCellLen <= 0 {
		return fmt.Errorf("max cell length must be positive, got %d", c.MaxCellLen)
	}
	return nil
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
