// Package config loads the bf configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "bf.toml"

// Config holds settings shared by the CLI and the runtime.
type Config struct {
	TapeSize       int    `toml:"tape_size"`
	TraceDir       string `toml:"trace_dir"`
	DB             string `toml:"db"`
	Verbosity      int    `toml:"verbosity"`
	StrictBrackets bool   `toml:"strict_brackets"`
	Bench          Bench  `toml:"bench"`
}

// Bench configures the benchmark harness.
type Bench struct {
	Iterations     int `toml:"iterations"`
	OutputCapacity int `toml:"output_capacity"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TapeSize: 30000,
		DB:       "bf.db",
		Bench: Bench{
			Iterations:     1000,
			OutputCapacity: 128 * 1024,
		},
	}
}

// Load reads path on top of the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %s", path, undecoded[0])
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.TapeSize <= 0 {
		return fmt.Errorf("tape_size must be positive, got %d", c.TapeSize)
	}
	if c.Bench.Iterations <= 0 {
		return fmt.Errorf("bench.iterations must be positive, got %d", c.Bench.Iterations)
	}
	if c.Bench.OutputCapacity < 0 {
		return fmt.Errorf("bench.output_capacity must not be negative, got %d", c.Bench.OutputCapacity)
	}
	return nil
}
