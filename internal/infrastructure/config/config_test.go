package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8600", cfg.Server.Port)
	assert.Equal(t, "/", cfg.Explorer.Root)
	assert.False(t, cfg.Explorer.ShowHidden)
	assert.Equal(t, 32, cfg.Explorer.ScanWorkers)
	assert.Positive(t, cfg.Explorer.SearchLimit)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DIRED_ROOT", "/srv/files")
	t.Setenv("DIRED_SCAN_WORKERS", "8")
	t.Setenv("DIRED_SHOW_HIDDEN", "true")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/files", cfg.Explorer.Root)
	assert.Equal(t, 8, cfg.Explorer.ScanWorkers)
	assert.True(t, cfg.Explorer.ShowHidden)
	assert.False(t, cfg.RateLimit.Enabled)
}
