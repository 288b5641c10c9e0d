package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "library-ledger",
			Version:     "1.0.0",
			Environment: "local",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Export: ExportConfig{
			Path: DefaultExportPath,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_AppConfig(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Name = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.name is required")
	})

	t.Run("invalid environment", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = "staging"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.environment must be one of")
	})
}

func TestConfig_Validate_ValidEnvironments(t *testing.T) {
	for _, env := range []string{"local", "dev", "qa", "prod", "test"} {
		t.Run(env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = env

			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestConfig_Validate_LogConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "trace level accepted",
			mutate: func(c *Config) { c.Log.Level = "trace" },
		},
		{
			name:   "pretty format accepted",
			mutate: func(c *Config) { c.Log.Format = "pretty" },
		},
		{
			name:    "unknown level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level must be one of",
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format must be one of",
		},
		{
			name: "file enabled without path",
			mutate: func(c *Config) {
				c.Log.File.Enabled = true
				c.Log.File.Path = ""
			},
			wantErr: "log.file.path is required when Enabled true",
		},
		{
			name: "file size too large",
			mutate: func(c *Config) {
				c.Log.File.Enabled = true
				c.Log.File.Path = "app.log"
				c.Log.File.MaxSizeMB = 4096
			},
			wantErr: "log.file.max_size must be at most 1024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_ExportAndMetrics(t *testing.T) {
	t.Run("export path required", func(t *testing.T) {
		cfg := validConfig()
		cfg.Export.Path = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "export.path is required")
	})

	t.Run("metrics enabled without textfile path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metrics.Enabled = true

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics.textfile_path is required")
	})

	t.Run("metrics disabled ignores textfile path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metrics.Enabled = false
		cfg.Metrics.TextfilePath = ""

		assert.NoError(t, cfg.Validate())
	})
}

func TestConfig_Validate_TelemetryConfig(t *testing.T) {
	t.Run("enabled requires endpoint", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.ServiceName = "library-ledger"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.endpoint is required")
	})

	t.Run("sampling rate out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.Telemetry.SamplingRate = 1.5

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.sampling_rate must be at most 1")
	})
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.App.Name = ""
	cfg.Export.Path = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed:")
	assert.Contains(t, err.Error(), "app.name")
	assert.Contains(t, err.Error(), "export.path")
}

func TestFormatFieldPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Config.app.name", "app.name"},
		{"Config.log.file.max_size", "log.file.max_size"},
		{"Config", "Config"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFieldPath(tt.input))
		})
	}
}
