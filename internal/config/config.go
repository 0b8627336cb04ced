// Package config loads the footprint configuration file and applies
// environment overrides.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/carbonex/footprint/internal/logging"
)

// Environment variables recognized as overrides. CLI flags override
// environment, environment overrides the config file.
const (
	EnvDatabaseURL = "FOOTPRINT_DATABASE_URL"
	EnvFactorsFile = "FOOTPRINT_FACTORS_FILE"
	EnvRegion      = "FOOTPRINT_REGION"
	EnvLogLevel    = "FOOTPRINT_LOG_LEVEL"
	EnvLogFormat   = "FOOTPRINT_LOG_FORMAT"
)

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ThresholdsConfig tunes insight generation.
type ThresholdsConfig struct {
	LargeFootprintTonnes float64 `yaml:"large_footprint_tonnes"`
	DominantScopeShare   float64 `yaml:"dominant_scope_share"`
	ConfidenceFloor      float64 `yaml:"confidence_floor"`
}

// Config is the application configuration.
type Config struct {
	// DefaultRegion applies when an assessment names no region.
	DefaultRegion string `yaml:"default_region"`

	// DatabaseURL connects the Postgres factor and assessment stores.
	// Empty runs the engine against file or built-in factors only.
	DatabaseURL string `yaml:"database_url"`

	// FactorsFile points at a YAML factor dataset used when no
	// database is configured.
	FactorsFile string `yaml:"factors_file"`

	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		DefaultRegion: "US",
		Thresholds: ThresholdsConfig{
			LargeFootprintTonnes: 10000,
			DominantScopeShare:   60,
			ConfidenceFloor:      70,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".footprint", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty), merges
// it over the defaults, and applies environment overrides. A missing
// file is not an error — defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		path = DefaultPath()
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv(EnvFactorsFile); v != "" {
		cfg.FactorsFile = v
	}
	if v := os.Getenv(EnvRegion); v != "" {
		cfg.DefaultRegion = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
}

type contextKey struct{}

// WithContext attaches cfg to ctx.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the config attached to ctx, or the defaults
// when none has been attached.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok {
		return cfg
	}
	return New()
}

// ToLoggingConfig bridges the config file's logging section to the
// logging package.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := "stderr"
	if lc.File != "" {
		output = "file"
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
