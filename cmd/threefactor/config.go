package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the YAML-driven description of one end-to-end run: which
// backend (toy or bn254) to compile against, and the three private
// factors for the spec's worked x1*x2*x3 circuit (spec §8, scenarios
// S1-S6).
type config struct {
	Backend string `yaml:"backend"` // "toy" or "bn254"
	X1      uint64 `yaml:"x1"`
	X2      uint64 `yaml:"x2"`
	X3      uint64 `yaml:"x3"`
}

func defaultConfig() config {
	return config{Backend: "toy", X1: 2, X2: 3, X3: 4}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return config{}, fmt.Errorf("threefactor: opening config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return config{}, fmt.Errorf("threefactor: decoding config %s: %w", path, err)
	}
	if cfg.Backend != "toy" && cfg.Backend != "bn254" {
		return config{}, fmt.Errorf("threefactor: unknown backend %q (want toy or bn254)", cfg.Backend)
	}
	return cfg, nil
}
