// Package config loads the router and evaluator's tunable run parameters:
// the sequencer's PRNG seed and wall-clock time budget, and the solve
// cache's location. Defaults are compiled in; a YAML file passed via
// `-config` overrides any subset of them (§6).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kittclouds/groute/pkg/sequencer"
)

// Config is the full set of run parameters external to the four input
// files themselves.
type Config struct {
	Seed       uint64        `yaml:"seed"`
	TimeBudget time.Duration `yaml:"time_budget"`
	CachePath  string        `yaml:"cache_path"`
}

// Default returns the compiled-in defaults: the fixed seed and time
// budget from package sequencer, and no solve cache.
func Default() Config {
	return Config{
		Seed:       sequencer.DefaultSeed,
		TimeBudget: sequencer.DefaultTimeBudget,
		CachePath:  "",
	}
}

// rawConfig mirrors Config but with a plain string time budget field,
// since time.Duration does not round-trip through YAML's native scalars
// the way it does through encoding/json with a custom type.
type rawConfig struct {
	Seed       *uint64 `yaml:"seed"`
	TimeBudget *string `yaml:"time_budget"`
	CachePath  *string `yaml:"cache_path"`
}

// Load reads path and overrides the compiled-in defaults with whatever
// fields it sets. A missing path is not an error — Default() is returned
// unchanged — matching the CLI's "-config is optional" contract (§6).
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if raw.Seed != nil {
		cfg.Seed = *raw.Seed
	}
	if raw.TimeBudget != nil {
		d, err := time.ParseDuration(*raw.TimeBudget)
		if err != nil {
			return cfg, fmt.Errorf("config: %s: time_budget: %w", path, err)
		}
		cfg.TimeBudget = d
	}
	if raw.CachePath != nil {
		cfg.CachePath = *raw.CachePath
	}

	return cfg, nil
}
