package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 20, cfg.Server.MaxSessions)
	assert.Equal(t, uint32(1000), cfg.Server.MaxReferencesPerNode)
	assert.Equal(t, time.Minute, cfg.Server.SessionTimeout)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Server.MaxSessions)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uastack.yaml")
	data := []byte(`
logging:
  level: DEBUG
  format: json
server:
  max_sessions: 5
  session_timeout: 30s
diagnostics:
  enabled: true
  listen: "127.0.0.1:9000"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 5, cfg.Server.MaxSessions)
	assert.Equal(t, 30*time.Second, cfg.Server.SessionTimeout)
	assert.True(t, cfg.Diagnostics.Enabled)
	assert.Equal(t, "127.0.0.1:9000", cfg.Diagnostics.Listen)
	// Unset values keep their defaults.
	assert.Equal(t, 500, cfg.Server.MaxOperationsPerRequest)
}

func TestValidationRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "LOUD"
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Server.MaxSessions = -1
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Diagnostics.Enabled = true
	cfg.Diagnostics.Listen = "not a hostport"
	assert.Error(t, Validate(cfg))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "uastack.yaml")
	require.NoError(t, Save(Default(), path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
}
