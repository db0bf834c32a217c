// Package config loads the gridcalc YAML configuration
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vogtb/go-spreadsheet/packages/logging"
)

// Output formats
const (
	FormatTable = "table"
	FormatPlain = "plain"
)

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type OutputConfig struct {
	// Format is "table" or "plain"
	Format string `yaml:"format"`
	// ShowErrors appends the error message after each error cell
	ShowErrors bool `yaml:"show_errors"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "warn",
		},
		Output: OutputConfig{
			Format: FormatTable,
		},
	}
}

// Load reads the file at path over the defaults. a missing file is not an
// error; an empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values that yaml decoding accepts but gridcalc
// cannot use
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Output.Format {
	case FormatTable, FormatPlain:
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	return nil
}

// LoggingConfig converts the log section for the logging package
func (c Config) LoggingConfig() logging.Config {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	return logging.Config{
		Level: level,
		JSON:  c.Log.JSON,
	}
}
