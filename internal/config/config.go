// Package config loads the simulation's runtime surface from a flat TOML
// file: tick cadence, season length, the per-tile rule timeout, whether
// the Weather phase uses the native evaluator, and where rule scripts
// live on disk.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is a single flat struct with only primitive fields. Per the
// no-tagged-union wire rule, there is no nested discriminated union
// anywhere here.
type Config struct {
	TickRateHz     float64 `toml:"tick_rate_hz"`
	SeasonLength   int     `toml:"season_length"`
	RuleTimeoutMs  int     `toml:"rule_timeout_ms"`
	NativeWeather  bool    `toml:"native_evaluation"`
	RuleDirectory  string  `toml:"rule_directory"`
	PhaseWorkers   int     `toml:"phase_workers"`
	WorldSeed      int64   `toml:"world_seed"`
}

// Default returns the configuration a fresh dev harness run starts with.
func Default() *Config {
	return &Config{
		TickRateHz:    1.0,
		SeasonLength:  90,
		RuleTimeoutMs: 10,
		NativeWeather: true,
		RuleDirectory: "",
		PhaseWorkers:  0,
		WorldSeed:     1,
	}
}

// Load reads path as TOML over Default()'s values, so a partial file
// only overrides the fields it sets.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
