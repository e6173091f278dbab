package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags_Overlays(t *testing.T) {
	withArgs(t, "-a", "http://school.example.org/api", "-d", "/tmp/state", "-i", "10", "-t", "30", "-l", "debug")

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	assert.Equal(t, "http://school.example.org/api", cfg.BaseURL)
	assert.Equal(t, "/tmp/state", cfg.StateDir)
	assert.Equal(t, 10*time.Second, cfg.WatchInterval)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseFlags_NoFlagsKeepDefaults(t *testing.T) {
	withArgs(t)

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.WatchInterval)
}

func TestParseFlags_TakesPrecedenceOverEnv(t *testing.T) {
	t.Setenv("CLASSMATE_BASE_URL", "http://from-env/api")
	withArgs(t, "-a", "http://from-flag/api")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)
	parseFlags(&cfg)

	assert.Equal(t, "http://from-flag/api", cfg.BaseURL)
}
