// Package config holds the settings of the decimate command: the engine
// options, the files to read and write, and logging.
package config

import (
	"github.com/pkg/errors"

	"github.com/gorustyt/godecimate/decimate"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Decimate decimate.Config `yaml:"decimate"`
	IO       IOConfig        `yaml:"io"`
	Logging  LoggingConfig   `yaml:"logging"`
}

// IOConfig names the mesh files. The format of each follows its extension.
type IOConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	// Split polygons into triangle fans before decimating.
	Triangulate bool `yaml:"triangulate"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`    // debug, info, warn, error
	LogFile string `yaml:"log_file"` // empty disables file logging
}

// Default returns the configuration used when no file or flag overrides it.
func Default() *Config {
	return &Config{
		Decimate: decimate.DefaultConfig(),
		IO: IOConfig{
			Triangulate: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the command cannot run without.
func (c *Config) Validate() error {
	if c.IO.Input == "" {
		return errors.New("no input mesh given")
	}
	if c.IO.Output == "" {
		return errors.New("no output mesh given")
	}
	return nil
}
