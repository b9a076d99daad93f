// Package config loads the mediactl configuration file, a small yaml
// document merged with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	MediaRoot string `yaml:"media_root,omitempty"`
	RedisURL  string `yaml:"redis_url,omitempty"`
}

const (
	DefaultMediaRoot = "media"

	EnvMediaRoot = "MEDIA_ROOT"
	EnvRedisURL  = "REDIS_URL"
)

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mediactl"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file if present and applies environment
// overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := &Config{MediaRoot: DefaultMediaRoot}

	path, err := Path()
	if err == nil {
		data, readErr := os.ReadFile(path)
		if readErr == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(readErr) {
			return nil, readErr
		}
	}

	if v := os.Getenv(EnvMediaRoot); v != "" {
		cfg.MediaRoot = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		cfg.RedisURL = v
	}

	if abs, err := filepath.Abs(cfg.MediaRoot); err == nil {
		cfg.MediaRoot = abs
	}
	return cfg, nil
}

// Save writes the config back to disk, creating the directory if
// needed.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "config.yaml")
	return os.WriteFile(path, data, 0o600)
}
