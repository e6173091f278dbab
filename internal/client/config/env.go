package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with CLASSMATE_* environment variables, loading a
// .env file from the working directory first if one exists. A missing .env
// is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("CLASSMATE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CLASSMATE_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("CLASSMATE_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = v
	}
	if v := os.Getenv("CLASSMATE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CLASSMATE_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
