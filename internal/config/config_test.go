package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "distance-decay", cfg.Spatial.WeightMode)
	assert.Equal(t, 200.0, cfg.Spatial.BandwidthKm)
	assert.Equal(t, 999, cfg.MonteCarlo.Iterations)
	assert.Equal(t, int64(42), cfg.MonteCarlo.Seed)
	assert.Equal(t, 0.15, cfg.Shocks.PriceChangeThreshold)
	assert.Equal(t, 0.25, cfg.Shocks.VolatilityThreshold)
	assert.Equal(t, 3, cfg.Shocks.VolatilityWindow)
	assert.Equal(t, 64, cfg.Cache.MaxEntries)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"binary mode allowed", func(c *Config) { c.Spatial.WeightMode = "binary" }, false},
		{"unknown weight mode", func(c *Config) { c.Spatial.WeightMode = "queen" }, true},
		{"negative bandwidth", func(c *Config) { c.Spatial.BandwidthKm = -10 }, true},
		{"zero iterations", func(c *Config) { c.MonteCarlo.Iterations = 0 }, true},
		{"window of one", func(c *Config) { c.Shocks.VolatilityWindow = 1 }, true},
		{"zero cache size", func(c *Config) { c.Cache.MaxEntries = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default()
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
spatial:
  weight_mode: binary
  bandwidth_km: 350
monte_carlo:
  iterations: 499
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	t.Setenv("YM_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "binary", cfg.Spatial.WeightMode)
	assert.Equal(t, 350.0, cfg.Spatial.BandwidthKm)
	assert.Equal(t, 499, cfg.MonteCarlo.Iterations)
	// Untouched sections keep their defaults.
	assert.Equal(t, 0.15, cfg.Shocks.PriceChangeThreshold)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("YM_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("YM_SPATIAL_BANDWIDTH_KM", "120")
	t.Setenv("YM_MONTE_CARLO_SEED", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 120.0, cfg.Spatial.BandwidthKm)
	assert.Equal(t, int64(7), cfg.MonteCarlo.Seed)
}
