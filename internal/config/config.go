// Package config holds the simulation's configuration: the CLI surface
// of spec.md §6, plus the sanity rules a run must satisfy before the
// driver starts.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors spec.md §6's CLI flags field for field.
type Config struct {
	InputPath  string `yaml:"input_path"`
	OutputPath string `yaml:"output_path"`

	Frequency        int `yaml:"frequency"`
	DurationSeconds  int `yaml:"duration"`
	PacketsPerSecond int `yaml:"pps"`

	SearchStart uint8 `yaml:"start"`
	SearchEnd   uint8 `yaml:"end"`

	Iterations int  `yaml:"iteration"`
	Magnifier  bool `yaml:"magnifier"`

	NBorder        int  `yaml:"border"`
	Persistent     bool `yaml:"traffic"`
	PermutationPct int  `yaml:"amount"`

	Seed int64 `yaml:"seed"`
}

// validBorderCounts are the router fan-outs the observation store's
// preprocessed CSV carries ingress assignments for (spec.md §4.2).
var validBorderCounts = map[int]bool{4: true, 8: true, 16: true, 32: true, 64: true}

// DefaultConfig returns the CLI's documented defaults (spec.md §6) for
// every setting except OutputPath and Seed, which are left empty and
// zero here (the CLI flags default them to results.csv and 1).
func DefaultConfig() Config {
	return Config{
		Frequency:        1024,
		DurationSeconds:  30,
		PacketsPerSecond: -1,
		SearchStart:      16,
		SearchEnd:        24,
		Iterations:       20,
		Magnifier:        true,
		NBorder:          4,
		Persistent:       true,
		PermutationPct:   -1,
	}
}

// ApplyDefaults fills the zero-valued numeric fields Frequency,
// DurationSeconds, PacketsPerSecond, SearchStart, SearchEnd, Iterations
// and NBorder with DefaultConfig's value (a zero PacketsPerSecond
// becomes -1). PermutationPct, the paths, the booleans and Seed are
// left as they are.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Frequency == 0 {
		c.Frequency = d.Frequency
	}
	if c.DurationSeconds == 0 {
		c.DurationSeconds = d.DurationSeconds
	}
	if c.PacketsPerSecond == 0 {
		c.PacketsPerSecond = d.PacketsPerSecond
	}
	if c.SearchStart == 0 {
		c.SearchStart = d.SearchStart
	}
	if c.SearchEnd == 0 {
		c.SearchEnd = d.SearchEnd
	}
	if c.Iterations == 0 {
		c.Iterations = d.Iterations
	}
	if c.NBorder == 0 {
		c.NBorder = d.NBorder
	}
}

// Validate enforces spec.md §6's argument sanity rules, returning a
// configuration-kind error (spec.md §7) rather than exiting directly.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("config: input path must not be empty")
	}
	if c.SearchStart > c.SearchEnd {
		return fmt.Errorf("config: start (%d) must be <= end (%d)", c.SearchStart, c.SearchEnd)
	}
	if c.SearchEnd > 32 {
		return fmt.Errorf("config: end (%d) must be <= 32", c.SearchEnd)
	}
	if !validBorderCounts[c.NBorder] {
		return fmt.Errorf("config: border (%d) must be one of 4, 8, 16, 32, 64", c.NBorder)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("config: iteration must be > 0, got %d", c.Iterations)
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("config: frequency must be > 0, got %d", c.Frequency)
	}
	if c.PermutationPct > 100 {
		return fmt.Errorf("config: amount must be <= 100, got %d", c.PermutationPct)
	}
	return nil
}

// Load reads a YAML configuration file, to be layered under flag
// overrides by the CLI.
func Load(path string) (Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return c, nil
}
