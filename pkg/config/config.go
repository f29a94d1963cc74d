package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration. Flags override anything loaded
// from a file; defaults are resolved once here and never read from
// ambient state later in the pipeline.
type Config struct {
	Targets  []string `yaml:"targets"`
	Path     string   `yaml:"path"`
	Output   string   `yaml:"output"`
	User     string   `yaml:"user"`
	KeyFile  string   `yaml:"key_file"`
	Password string   `yaml:"password"`
	Port     int      `yaml:"port"`
}

// DefaultConfig returns the settings used when nothing is configured.
// The output directory defaults to the caller's home directory.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Path:   home,
		Output: "host",
		Port:   22,
	}
}

// Load reads configuration from a yaml file. An empty path or a
// missing file falls back to defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}
	if cfg.Output == "" {
		cfg.Output = "host"
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	return cfg, nil
}
