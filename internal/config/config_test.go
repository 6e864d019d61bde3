package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "latin1", cfg.Encoding)
	require.Equal(t, "info", cfg.Logging.Level)
	require.True(t, cfg.Logging.Console)
	require.Empty(t, cfg.Logging.File)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
encoding: cp850
logging:
  level: debug
  file: /var/log/dbfconv/dbfconv.log
  max_size_mb: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "cp850", cfg.Encoding)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "/var/log/dbfconv/dbfconv.log", cfg.Logging.File)
	require.Equal(t, 10, cfg.Logging.MaxSizeMB)
	// Unset rotation values fall back to defaults when a file sink is on.
	require.Equal(t, 3, cfg.Logging.MaxBackups)
	require.Equal(t, 28, cfg.Logging.MaxAgeDays)
	// Console stays off when a file sink is configured explicitly.
	require.False(t, cfg.Logging.Console)
}

func TestLoadFromFile_InvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_NegativeRotation(t *testing.T) {
	cfg := Default()
	cfg.Logging.File = "x.log"
	cfg.Logging.MaxBackups = -1
	require.Error(t, cfg.Validate())
}
