// Package config loads optional momento settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable defaults. Flags and environment variables
// override anything set here.
type Config struct {
	DBPath        string  `yaml:"db_path"`
	DefaultWindow int     `yaml:"default_window"`
	DefaultStep   float64 `yaml:"default_step"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DBPath:        filepath.Join(home, ".momento", "momento.db"),
		DefaultWindow: 5,
		DefaultStep:   1,
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".momento", "config.yaml")
}

// Load reads the config file at path, falling back to defaults for any
// unset field. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(b, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.DBPath != "" {
		cfg.DBPath = file.DBPath
	}
	if file.DefaultWindow > 0 {
		cfg.DefaultWindow = file.DefaultWindow
	}
	if file.DefaultStep > 0 {
		cfg.DefaultStep = file.DefaultStep
	}
	return cfg, nil
}
