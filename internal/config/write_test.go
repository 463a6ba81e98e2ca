package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listbridge", "config.toml")

	require.NoError(t, WriteDefault(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[catalog]")
	assert.Contains(t, string(content), "[radarr]")
	assert.Contains(t, string(content), "${RADARR_API_KEY:-}")
}

func TestWriteDefault_LoadsCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path))

	t.Setenv("KODI_URL", "http://htpc:8080")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://htpc:8080", cfg.Kodi.URL)
	assert.False(t, cfg.Radarr.Enabled)
}
