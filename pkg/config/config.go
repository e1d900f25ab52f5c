// Package config loads the optional boxwatch.yaml tuning file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/boxwatch/pkg/host"
	"github.com/go-drift/boxwatch/pkg/resize"
)

// Default tuning values applied when boxwatch.yaml is absent or partial,
// aliasing the engine's own defaults.
const (
	DefaultMaxCycles    = resize.DefaultMaxCycles
	DefaultTickInterval = host.DefaultTickInterval
)

// Config represents the optional boxwatch.yaml configuration.
type Config struct {
	Loop LoopConfig `yaml:"loop"`
	Tick TickConfig `yaml:"tick"`
	Log  LogConfig  `yaml:"log"`
}

// LoopConfig tunes the convergence loop.
type LoopConfig struct {
	MaxCycles int `yaml:"max_cycles,omitempty"`
}

// TickConfig tunes the periodic fallback trigger.
type TickConfig struct {
	// Interval is a Go duration string, e.g. "250ms".
	Interval string `yaml:"interval,omitempty"`
}

// LogConfig tunes error reporting.
type LogConfig struct {
	Verbose bool `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	MaxCycles    int
	TickInterval time.Duration
	Verbose      bool
}

// LoadOptional reads boxwatch.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "boxwatch.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read boxwatch.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse boxwatch.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve applies defaults and validates the configuration.
func (c *Config) Resolve() (Resolved, error) {
	resolved := Resolved{
		MaxCycles:    DefaultMaxCycles,
		TickInterval: DefaultTickInterval,
		Verbose:      c.Log.Verbose,
	}

	if c.Loop.MaxCycles < 0 {
		return Resolved{}, fmt.Errorf("loop.max_cycles must not be negative: %d", c.Loop.MaxCycles)
	}
	if c.Loop.MaxCycles > 0 {
		resolved.MaxCycles = c.Loop.MaxCycles
	}

	if c.Tick.Interval != "" {
		interval, err := time.ParseDuration(c.Tick.Interval)
		if err != nil {
			return Resolved{}, fmt.Errorf("invalid tick.interval %q: %w", c.Tick.Interval, err)
		}
		if interval <= 0 {
			return Resolved{}, fmt.Errorf("tick.interval must be positive: %s", c.Tick.Interval)
		}
		resolved.TickInterval = interval
	}

	return resolved, nil
}

// Load reads and resolves the configuration from dir in one step.
func Load(dir string) (Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return Resolved{}, err
	}
	return cfg.Resolve()
}
