// Package config reads the deployment configuration of the perception tools from disk.
package config

import (
	"go.viam.com/rover/logging"
	"go.viam.com/rover/vision/terrain"
)

// Config describes how to set up perception for one rover.
type Config struct {
	Perception terrain.Config `json:"perception" yaml:"perception"`
	LogLevel   logging.Level  `json:"log_level" yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Perception: terrain.DefaultConfig(),
		LogLevel:   logging.INFO,
	}
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate() error {
	return c.Perception.Validate("perception")
}
