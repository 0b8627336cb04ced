package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "US", cfg.DefaultRegion)
	assert.Equal(t, 10000.0, cfg.Thresholds.LargeFootprintTonnes)
	assert.Equal(t, 60.0, cfg.Thresholds.DominantScopeShare)
	assert.Equal(t, 70.0, cfg.Thresholds.ConfidenceFloor)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `default_region: DE
factors_file: /etc/footprint/factors.yaml
thresholds:
  large_footprint_tonnes: 5000
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DE", cfg.DefaultRegion)
	assert.Equal(t, "/etc/footprint/factors.yaml", cfg.FactorsFile)
	assert.Equal(t, 5000.0, cfg.Thresholds.LargeFootprintTonnes)
	// Unset threshold keys keep their defaults.
	assert.Equal(t, 60.0, cfg.Thresholds.DominantScopeShare)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "US", cfg.DefaultRegion)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_region: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "postgres://db/footprint")
	t.Setenv(EnvRegion, "GB")
	t.Setenv(EnvLogLevel, "trace")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://db/footprint", cfg.DatabaseURL)
	assert.Equal(t, "GB", cfg.DefaultRegion)
	assert.Equal(t, "trace", cfg.Logging.Level)
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json"}
	out := lc.ToLoggingConfig()
	assert.Equal(t, "stderr", out.Output)

	lc.File = "/var/log/footprint.log"
	out = lc.ToLoggingConfig()
	assert.Equal(t, "file", out.Output)
	assert.Equal(t, "/var/log/footprint.log", out.File)
}
