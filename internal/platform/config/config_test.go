package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "library-ledger", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.Equal(t, DefaultExportPath, cfg.Export.Path)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultMetricsTextfilePath, cfg.Metrics.TextfilePath)

	require.NoError(t, cfg.Validate())
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_EXPORT_PATH", "out/report.json")
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_METRICS_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "out/report.json", cfg.Export.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "library-ledger", cfg.App.Name)
}

// TestLoad_ProfileFile tests that a profile YAML overrides defaults.
func TestLoad_ProfileFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "qa.yaml"), []byte(`
app:
  environment: qa
metrics:
  enabled: true
  textfile_path: /var/lib/node_exporter/library.prom
`), 0o600))

	t.Chdir(dir)

	cfg, err := Load("qa")
	require.NoError(t, err)

	assert.Equal(t, "qa", cfg.App.Environment)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/var/lib/node_exporter/library.prom", cfg.Metrics.TextfilePath)
}

// TestLoad_InvalidYAML tests that a malformed config file is reported.
func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "base.yaml"), []byte("app: [unclosed"), 0o600))

	t.Chdir(dir)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

// TestLoad_LogFileDefaults tests that log file defaults are set correctly.
func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/library.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

// TestLoad_TelemetryDefaults tests that telemetry defaults are set correctly.
func TestLoad_TelemetryDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "library-ledger", cfg.Telemetry.ServiceName)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRate)
}

// TestDefaults tests that the defaults map contains expected values.
func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "library-ledger", d["app.name"])
	assert.Equal(t, DefaultExportPath, d["export.path"])
	assert.Equal(t, "stats.json", d["export.path"])
	assert.Equal(t, DefaultMetricsTextfilePath, d["metrics.textfile_path"])
}
