package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.APIKey != "" {
		t.Errorf("expected empty API key, got %q", cfg.APIKey)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Workers)
	}
	if cfg.QueueSize != 64 {
		t.Errorf("expected queue size 64, got %d", cfg.QueueSize)
	}
	if cfg.MaxUploadBytes != 50*1024*1024 {
		t.Errorf("expected 50MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h job TTL, got %s", cfg.JobTTL)
	}
	if cfg.PdftotextBin != "pdftotext" {
		t.Errorf("expected pdftotext fallback, got %q", cfg.PdftotextBin)
	}
	if !cfg.LogJSON {
		t.Error("expected JSON logging by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EXTRACTOR_PORT", "9090")
	t.Setenv("EXTRACTOR_API_KEY", "secret")
	t.Setenv("EXTRACTOR_WORKERS", "8")
	t.Setenv("EXTRACTOR_QUEUE_SIZE", "128")
	t.Setenv("EXTRACTOR_MAX_UPLOAD_MB", "10")
	t.Setenv("EXTRACTOR_JOB_TTL", "30m")
	t.Setenv("EXTRACTOR_MAX_CELL_LEN", "200")
	t.Setenv("EXTRACTOR_LOG_JSON", "false")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("expected API key secret, got %q", cfg.APIKey)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
	if cfg.QueueSize != 128 {
		t.Errorf("expected queue size 128, got %d", cfg.QueueSize)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Errorf("expected 10MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m job TTL, got %s", cfg.JobTTL)
	}
	if cfg.MaxCellLen != 200 {
		t.Errorf("expected max cell length 200, got %d", cfg.MaxCellLen)
	}
	if cfg.LogJSON {
		t.Error("expected text logging when EXTRACTOR_LOG_JSON=false")
	}
}

func TestLoadPdftotextOverride(t *testing.T) {
	t.Setenv("EXTRACTOR_PDFTOTEXT", "/opt/poppler/bin/pdftotext")

	if got := Load().PdftotextBin; got != "/opt/poppler/bin/pdftotext" {
		t.Errorf("expected overridden binary path, got %q", got)
	}
}

func TestLoadPdftotextEmptyDisables(t *testing.T) {
	t.Setenv("EXTRACTOR_PDFTOTEXT", "")

	if got := Load().PdftotextBin; got != "" {
		t.Errorf("expected empty string to disable fallback, got %q", got)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("EXTRACTOR_WORKERS", "many")
	t.Setenv("EXTRACTOR_JOB_TTL", "soon")
	t.Setenv("EXTRACTOR_LOG_JSON", "yep")

	cfg := Load()

	if cfg.Workers != 4 {
		t.Errorf("expected default workers on malformed value, got %d", cfg.Workers)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected default TTL on malformed value, got %s", cfg.JobTTL)
	}
	if !cfg.LogJSON {
		t.Error("expected default logging on malformed value")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := Load()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"non-numeric port", func(c *Config) { c.Port = "http" }},
		{"port out of range", func(c *Config) { c.Port = "70000" }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"negative queue", func(c *Config) { c.QueueSize = -1 }},
		{"zero upload limit", func(c *Config) { c.MaxUploadBytes = 0 }},
		{"zero TTL", func(c *Config) { c.JobTTL = 0 }},
		{"zero cell length", func(c *Config) { c.MaxCellLen = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
