// Package config loads engine settings from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the formula engine server settings. Flags and environment
// variables override whatever the file provides.
type Config struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	DisableUI bool   `yaml:"disableUI"`
	BodyLimit int    `yaml:"bodyLimit"` // max request body size in bytes
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Host:      "0.0.0.0",
		Port:      8790,
		BodyLimit: 1 << 20,
	}
}

// Load reads a YAML config file and merges it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
