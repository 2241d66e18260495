package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "reports", cfg.Paths.OutputDir)
	assert.False(t, cfg.Pipeline.IncludeNonSales)
	assert.Equal(t, 0.001, cfg.Pipeline.MinSupport)
	assert.Equal(t, 20, cfg.Pipeline.TopProducts)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SALESPULSE_LOGGING_LEVEL", "debug")
	t.Setenv("SALESPULSE_PIPELINE_MIN_SUPPORT", "0.05")
	t.Setenv("SALESPULSE_PIPELINE_INCLUDE_NON_SALES", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 0.05, cfg.Pipeline.MinSupport)
	assert.True(t, cfg.Pipeline.IncludeNonSales)
}

func TestLoad_InvalidLevel(t *testing.T) {
	t.Setenv("SALESPULSE_LOGGING_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(c *Config) {},
		},
		{
			name:    "min support above one",
			mutate:  func(c *Config) { c.Pipeline.MinSupport = 1.5 },
			wantErr: "min support",
		},
		{
			name:    "negative min support",
			mutate:  func(c *Config) { c.Pipeline.MinSupport = -0.1 },
			wantErr: "min support",
		},
		{
			name:    "negative top products",
			mutate:  func(c *Config) { c.Pipeline.TopProducts = -1 },
			wantErr: "top products",
		},
		{
			name:   "unknown format coerced to json",
			mutate: func(c *Config) { c.Logging.Format = "xml" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMergeConfigs(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Logging.Level = "warn"
	fileCfg.Paths.OutputDir = "out"
	fileCfg.Pipeline.MinSupport = 0.01
	fileCfg.Pipeline.TopProducts = 5

	envCfg := Config{}
	envCfg.Logging.Level = "error" // env wins
	envCfg.Pipeline.TopProducts = 0

	merged := mergeConfigs(fileCfg, envCfg)
	assert.Equal(t, "error", merged.Logging.Level)
	assert.Equal(t, "out", merged.Paths.OutputDir)
	assert.Equal(t, 0.01, merged.Pipeline.MinSupport)
	assert.Equal(t, 5, merged.Pipeline.TopProducts)
}
