package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sleepscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(12345), cfg.Generator.Seed)
	assert.Equal(t, 50, cfg.Generator.Employees)
	assert.Equal(t, 30, cfg.Generator.Days)
	assert.Equal(t, "2023-12-30", cfg.Generator.ReferenceDate)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Addr())

	gen, err := cfg.GeneratorConfig()
	require.NoError(t, err)
	assert.Equal(t, dataset.DefaultGeneratorConfig(), gen)

	hist := cfg.HistogramConfig()
	assert.Equal(t, 4.0, hist.Min)
	assert.Equal(t, 10.0, hist.Max)
	assert.Equal(t, 0.5, hist.Width)

	assert.Equal(t, cfg, Default())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Generator.Employees)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
generator:
  seed: 7
  employees: 10
  reference_date: "2024-03-01"
server:
  port: 9090
  mode: debug
  shutdown_timeout: 2s
logging:
  format: console
histogram:
  bin_width: 0.25
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Generator.Seed)
	assert.Equal(t, 10, cfg.Generator.Employees)
	assert.Equal(t, 30, cfg.Generator.Days, "unset keys keep their defaults")
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 0.25, cfg.Histogram.BinWidth)

	gen, err := cfg.GeneratorConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), gen.ReferenceDate)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("SLEEPSCOPE_SERVER_PORT", "7070")
	t.Setenv("SLEEPSCOPE_GENERATOR_EMPLOYEES", "5")
	t.Setenv("SLEEPSCOPE_LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Generator.Employees)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"employees", "generator:\n  employees: 0\n", "employee count 0 must be positive"},
		{"days", "generator:\n  days: -1\n", "day count -1 must be positive"},
		{"seed", "generator:\n  seed: -3\n", "seed -3 must not be negative"},
		{"reference date", "generator:\n  reference_date: 30/12/2023\n", "reference date"},
		{"mode", "server:\n  mode: production\n", `server mode "production"`},
		{"port", "server:\n  port: 70000\n", "server port 70000"},
		{"format", "logging:\n  format: xml\n", `logging format "xml"`},
		{"bin width", "histogram:\n  bin_width: 0\n", "bin width 0 must be positive"},
		{"span", "histogram:\n  min: 10\n  max: 4\n", "histogram max 4 must exceed min 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, engine.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Server.Mode = "prod"
	cfg.Histogram.BinWidth = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server mode")
	assert.Contains(t, err.Error(), "bin width")
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [port\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
