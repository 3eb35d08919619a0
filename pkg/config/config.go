package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// OutputFormats lists the formats commands can print.
var OutputFormats = []string{"table", "json"}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration
type Config struct {
	LogLevel     logrus.Level `yaml:"log_level" json:"log_level"`
	OutputFormat string       `yaml:"output_format" json:"output_format" default:"table"`
	// PayloadLimit is the advertising payload budget in bytes.
	PayloadLimit int  `yaml:"payload_limit" json:"payload_limit" default:"31"`
	IncludeFlags bool `yaml:"include_flags" json:"include_flags" default:"true"`
	// DeviceName is advertised when a description asks for a name but carries none.
	DeviceName string `yaml:"device_name" json:"device_name"`
}

// DefaultConfig returns default configuration values
func DefaultConfig() *Config {
	cfg := &Config{}
	defaults.SetDefaults(cfg)
	cfg.LogLevel = logrus.InfoLevel
	return cfg
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed by the field types.
func (c *Config) Validate() error {
	valid := false
	for _, f := range OutputFormats {
		if c.OutputFormat == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: output format '%s' must be one of %v", ErrInvalidConfig, c.OutputFormat, OutputFormats)
	}
	if c.PayloadLimit <= 0 {
		return fmt.Errorf("%w: payload limit must be positive, got %d", ErrInvalidConfig, c.PayloadLimit)
	}
	return nil
}

// NewLogger creates a configured logger instance
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)

	// Use structured logging format
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	return logger
}
