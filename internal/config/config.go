// Package config loads simulator configuration and builds its logger.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/contractsim/simulator/internal/store"
)

// Config is the simulator configuration as read from YAML.
type Config struct {
	Backend store.Backend `yaml:"backend"`
	DataDir string        `yaml:"data_dir"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	// one of trace, debug, info, warn, error, disabled
	Level string `yaml:"level"`
	// console or json
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns an in-memory configuration that logs warnings to the console.
func Default() Config {
	return Config{
		Backend: store.BackendMemory,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Addr: "localhost:2112",
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks that every field holds a supported value.
func (c Config) Validate() error {
	switch c.Backend {
	case store.BackendMemory, store.BackendMemDB:
	case store.BackendGoLevelDB:
		if c.DataDir == "" {
			return errors.New("data_dir is required for the goleveldb backend")
		}
	default:
		return errors.Errorf("unknown backend %q", c.Backend)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return errors.Wrap(err, "log.level")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return errors.New("metrics.addr is required when metrics are enabled")
	}
	return nil
}

// NewLogger builds the logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return zerolog.Nop(), errors.Wrap(err, "log level")
	}
	if c.Format == "console" {
		noColor := true
		if f, ok := w.(*os.File); ok {
			noColor = !isatty.IsTerminal(f.Fd())
		}
		w = zerolog.ConsoleWriter{Out: w, NoColor: noColor}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
