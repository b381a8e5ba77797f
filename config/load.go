package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const fileName = "godecimate.yaml"

// Load builds the configuration with priority defaults < file < flags. The
// file is the one named by -config, else the first found by findConfigFile.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, errors.WithMessagef(err, "loading config from %s", path)
		}
	}

	applyFlags(cfg)
	return cfg, nil
}

// LoadFile reads path over the defaults, ignoring flags.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		return nil, errors.WithMessagef(err, "loading config from %s", path)
	}
	return cfg, nil
}

func findConfigFile() string {
	candidates := []string{filepath.Join(".", fileName)}
	if dir := ConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per user configuration directory, or "" when the
// platform has none.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "godecimate")
}

// loadFromFile merges the YAML file at path into cfg. Keys missing from the
// file keep their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return errors.Wrap(yaml.Unmarshal(data, cfg), "yaml")
}
