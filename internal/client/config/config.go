package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the classmate CLI.
//
// Fields:
//   - BaseURL: root of the backend REST API, e.g. "https://school.example.org/api".
//     There is no default: historical builds hard-coded conflicting hosts and
//     ports, so the value must always be supplied explicitly.
//   - StateDir: directory holding the two session keys (user.json, token).
//   - DownloadDir: where downloaded files are written.
//   - WatchInterval: how often the session watcher re-reads the state dir.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	BaseURL        string
	StateDir       string
	DownloadDir    string
	WatchInterval  time.Duration
	RequestTimeout time.Duration
	LogLevel       string
}

// ErrNoBaseURL is returned by Validate when the backend address was not
// supplied by any configuration source.
var ErrNoBaseURL = errors.New("backend base URL is required: set -a, CLASSMATE_BASE_URL, or base_url in the config file")

// LoadDefaults populates c with sensible defaults. BaseURL deliberately
// stays empty.
func (c *Config) LoadDefaults() {
	c.StateDir = ".classmate"
	c.DownloadDir = "."
	c.WatchInterval = 3 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file if present), JSON (if present), and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
