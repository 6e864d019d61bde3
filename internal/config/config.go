// Package config provides configuration for the dbfconv tool: the
// default input charset and the logging sinks. Values are resolved once
// at startup and injected; the conversion core never reads them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tool configuration.
type Config struct {
	// Encoding is the character encoding of DBF input files.
	Encoding string `yaml:"encoding"`

	// Logging configures the log sinks.
	Logging LogConfig `yaml:"logging"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the verbosity threshold: trace, debug, info, warn, error
	// or fatal.
	Level string `yaml:"level"`

	// Console mirrors log output to stderr.
	Console bool `yaml:"console"`

	// File is the path of the rotating log file. Empty disables the
	// file sink.
	File string `yaml:"file"`

	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files to retain.
	MaxBackups int `yaml:"max_backups"`

	// MaxAgeDays is the number of days rotated files are retained.
	MaxAgeDays int `yaml:"max_age_days"`
}

var validLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load returns the configuration from the YAML file at path, or the
// defaults when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFromFile(path)
}

// LoadFromFile reads and validates a YAML configuration file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Encoding == "" {
		c.Encoding = "latin1"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.File == "" && !c.Logging.Console {
		c.Logging.Console = true
	}
	if c.Logging.File != "" {
		if c.Logging.MaxSizeMB == 0 {
			c.Logging.MaxSizeMB = 100
		}
		if c.Logging.MaxBackups == 0 {
			c.Logging.MaxBackups = 3
		}
		if c.Logging.MaxAgeDays == 0 {
			c.Logging.MaxAgeDays = 28
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if c.Logging.File != "" {
		if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
			return fmt.Errorf("log rotation values must not be negative")
		}
	}
	return nil
}
