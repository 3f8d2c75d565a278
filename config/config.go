package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/spektr-org/sleepscope/analytics"
	"github.com/spektr-org/sleepscope/dataset"
	"github.com/spektr-org/sleepscope/engine"
)

// EnvPrefix prefixes every environment override, e.g. SLEEPSCOPE_SERVER_PORT.
const EnvPrefix = "SLEEPSCOPE"

// Config structure represents the application configuration
type Config struct {
	Generator struct {
		Seed          int64  `mapstructure:"seed"`
		Employees     int    `mapstructure:"employees"`
		Days          int    `mapstructure:"days"`
		ReferenceDate string `mapstructure:"reference_date"`
	} `mapstructure:"generator"`

	Server struct {
		Port            int           `mapstructure:"port"`
		Mode            string        `mapstructure:"mode"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`

	Histogram struct {
		Min      float64 `mapstructure:"min"`
		Max      float64 `mapstructure:"max"`
		BinWidth float64 `mapstructure:"bin_width"`
	} `mapstructure:"histogram"`
}

// Load builds the configuration from defaults, the YAML file at path (if
// it exists) and SLEEPSCOPE_* environment variables, in that order of
// precedence from lowest to highest.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults always decode.
	_ = v.Unmarshal(cfg)
	return cfg
}

// setDefaults sets default values for the configuration
func setDefaults(v *viper.Viper) {
	// Generator defaults
	v.SetDefault("generator.seed", dataset.DefaultSeed)
	v.SetDefault("generator.employees", dataset.DefaultEmployees)
	v.SetDefault("generator.days", dataset.DefaultDays)
	v.SetDefault("generator.reference_date", dataset.DefaultReferenceDate.Format(engine.DateLayout))

	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Histogram defaults
	v.SetDefault("histogram.min", analytics.DefaultHistogram.Min)
	v.SetDefault("histogram.max", analytics.DefaultHistogram.Max)
	v.SetDefault("histogram.bin_width", analytics.DefaultHistogram.Width)
}

// Validate ensures that the configuration is valid. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.GeneratorConfig(); err != nil {
		errs = append(errs, err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server mode %q must be debug, release or test", c.Server.Mode))
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging format %q must be json or console", c.Logging.Format))
	}

	if c.Histogram.BinWidth <= 0 {
		errs = append(errs, fmt.Errorf("histogram bin width %v must be positive", c.Histogram.BinWidth))
	}
	if c.Histogram.Max <= c.Histogram.Min {
		errs = append(errs, fmt.Errorf("histogram max %v must exceed min %v", c.Histogram.Max, c.Histogram.Min))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", engine.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// GeneratorConfig converts the generator section for dataset.New.
func (c *Config) GeneratorConfig() (dataset.GeneratorConfig, error) {
	ref, err := time.Parse(engine.DateLayout, c.Generator.ReferenceDate)
	if err != nil {
		return dataset.GeneratorConfig{}, fmt.Errorf("reference date %q is not YYYY-MM-DD: %w", c.Generator.ReferenceDate, engine.ErrInvalidInput)
	}
	gen := dataset.GeneratorConfig{
		Seed:          c.Generator.Seed,
		Employees:     c.Generator.Employees,
		Days:          c.Generator.Days,
		ReferenceDate: ref,
	}
	if err := gen.Validate(); err != nil {
		return dataset.GeneratorConfig{}, err
	}
	return gen, nil
}

// HistogramConfig converts the histogram section for the dashboard.
func (c *Config) HistogramConfig() analytics.HistogramConfig {
	return analytics.HistogramConfig{
		Min:   c.Histogram.Min,
		Max:   c.Histogram.Max,
		Width: c.Histogram.BinWidth,
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
