package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Quota.JapanTop)
	assert.Equal(t, 50, cfg.Quota.ForeignTarget)
	assert.Equal(t, "japan_top200_mymaps.csv", cfg.Output.JapanFile)
	assert.Equal(t, "foreign_tokyo50_mymaps.csv", cfg.Output.ForeignFile)
	assert.NotEmpty(t, cfg.Sources.MarketCapURLs)
	assert.NotEmpty(t, cfg.Sources.SP500URL)
	assert.NotEmpty(t, cfg.Sources.JapanDevURL)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout())
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "companymaps.db", cfg.RunLog.Path)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("COMPANYMAPS_QUOTA_FOREIGN_TARGET", "10")
	t.Setenv("COMPANYMAPS_LOG_LEVEL", "debug")
	t.Setenv("COMPANYMAPS_OUTPUT_DIR", "/tmp/out")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Quota.ForeignTarget)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/out", cfg.Output.Dir)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
}

func TestInitLogger_BadLevel(t *testing.T) {
	assert.Error(t, InitLogger(LogConfig{Level: "verbose", Format: "json"}))
}
