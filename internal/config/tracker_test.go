package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTrackerConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadTrackerConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "portfolio-tracker.log", cfg.Log.Path)
	assert.Equal(t, File, cfg.Storage.Backend)
	assert.Equal(t, "portfolio.json", cfg.Storage.DefaultFileName)
	assert.Equal(t, 10*time.Second, cfg.Storage.Timeout)
	require.NotNil(t, cfg.Inputs.ClearOnOpen)
	assert.True(t, *cfg.Inputs.ClearOnOpen)
	assert.Equal(t, ".", cfg.Storage.DataDir)
}

func TestLoadTrackerConfig(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  path: /tmp/tracker.log
storage:
  backend: sqlite
  sqlite_path: /tmp/p.db
  data_dir: /data
  timeout: 3s
inputs:
  clear_on_open: false
`)

	cfg, err := LoadTrackerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/tracker.log", cfg.Log.Path)
	assert.Equal(t, SQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/p.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 3*time.Second, cfg.Storage.Timeout)
	assert.False(t, *cfg.Inputs.ClearOnOpen)
	assert.Equal(t, "portfolio.json", cfg.Storage.DefaultFileName)
	assert.Equal(t, "/data", cfg.Storage.DataDir)
}

func TestLoadTrackerConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "backend", body: "storage:\n  backend: s3\n"},
		{name: "level", body: "log:\n  level: loud\n"},
		{name: "yaml", body: "log: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTrackerConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_TRACKER_CONFIG", "")
	assert.Equal(t, "./configs/tracker.yaml", PathFromEnv())

	t.Setenv("PORTFOLIO_TRACKER_CONFIG", "/etc/tracker.yaml")
	assert.Equal(t, "/etc/tracker.yaml", PathFromEnv())
}
