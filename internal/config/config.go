package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Spatial    SpatialConfig    `yaml:"spatial" envconfig:"SPATIAL"`
	MonteCarlo MonteCarloConfig `yaml:"monte_carlo" envconfig:"MONTE_CARLO"`
	Shocks     ShockConfig      `yaml:"shocks" envconfig:"SHOCKS"`
	Cache      CacheConfig      `yaml:"cache" envconfig:"CACHE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// SpatialConfig contains spatial weights construction parameters
type SpatialConfig struct {
	// WeightMode selects between full binary contiguity and inverse
	// distance weighting within a bandwidth.
	WeightMode  string  `yaml:"weight_mode" envconfig:"WEIGHT_MODE" default:"distance-decay" validate:"oneof=binary distance-decay"`
	BandwidthKm float64 `yaml:"bandwidth_km" envconfig:"BANDWIDTH_KM" default:"200" validate:"gt=0"`
}

// MonteCarloConfig contains permutation-test parameters
type MonteCarloConfig struct {
	Iterations int   `yaml:"iterations" envconfig:"ITERATIONS" default:"999" validate:"gt=0"`
	Seed       int64 `yaml:"seed" envconfig:"SEED" default:"42"`
	Workers    int   `yaml:"workers" envconfig:"WORKERS" default:"4" validate:"gt=0"`
}

// ShockConfig contains shock detection thresholds
type ShockConfig struct {
	// PriceChangeThreshold is the relative month-over-month change that
	// triggers a shock on its own.
	PriceChangeThreshold float64 `yaml:"price_change_threshold" envconfig:"PRICE_CHANGE_THRESHOLD" default:"0.15" validate:"gt=0"`
	// VolatilityThreshold is the coefficient-of-variation level that
	// triggers a shock; twice this level escalates severity to high.
	VolatilityThreshold float64 `yaml:"volatility_threshold" envconfig:"VOLATILITY_THRESHOLD" default:"0.25" validate:"gt=0"`
	// VolatilityWindow is the number of trailing points (including the
	// current one) used for the windowed volatility estimate.
	VolatilityWindow int `yaml:"volatility_window" envconfig:"VOLATILITY_WINDOW" default:"3" validate:"gte=2"`
}

// CacheConfig bounds the weights-relation cache
type CacheConfig struct {
	MaxEntries int           `yaml:"max_entries" envconfig:"MAX_ENTRIES" default:"64" validate:"gt=0"`
	TTL        time.Duration `yaml:"ttl" envconfig:"TTL" default:"15m" validate:"gt=0"`
}

// Load loads configuration in three layers: struct-tag defaults, then
// environment variables (YM_ prefix), then an optional YAML config file
// (YM_CONFIG_FILE, default config.yaml). Keys present in the file
// override the environment; keys absent from the file are untouched.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("YM", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration produced by the struct defaults
// alone, for library callers that bypass the environment.
func Default() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("YM_UNSET_PREFIX", &cfg); err != nil {
		return nil, fmt.Errorf("failed to build default config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("default config invalid: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getConfigFilePath() string {
	if path := os.Getenv("YM_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}
