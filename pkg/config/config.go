package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the optional check configuration file.
type Config struct {
	SNMP    SNMPConfig    `json:"snmp" yaml:"snmp"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SNMPConfig holds transport settings shared by every request of a run.
type SNMPConfig struct {
	Community string `json:"community" yaml:"community"`
	Port      int    `json:"port" yaml:"port"`
	Version   string `json:"version" yaml:"version"`
	Timeout   string `json:"timeout" yaml:"timeout"`
	Retries   int    `json:"retries" yaml:"retries"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Path   string `json:"path" yaml:"path"`
	Format string `json:"format" yaml:"format"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		SNMP: SNMPConfig{
			Community: "public",
			Port:      161,
			Version:   "2c",
			Timeout:   "5s",
			Retries:   1,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads YAML/JSON configuration on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// TimeoutDuration parses the per-request timeout.
func (s SNMPConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid snmp timeout %q: %w", s.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid snmp timeout %q: must be positive", s.Timeout)
	}
	return d, nil
}

// Validate checks values a device request depends on.
func (c *Config) Validate() error {
	if c.SNMP.Port < 1 || c.SNMP.Port > 65535 {
		return fmt.Errorf("invalid snmp port %d: must be within 1-65535", c.SNMP.Port)
	}
	if c.SNMP.Retries < 0 {
		return fmt.Errorf("invalid snmp retries %d", c.SNMP.Retries)
	}
	if _, err := c.SNMP.TimeoutDuration(); err != nil {
		return err
	}
	switch c.SNMP.Version {
	case "1", "v1", "2", "2c", "v2c":
	default:
		return fmt.Errorf("unsupported snmp version %q", c.SNMP.Version)
	}
	return nil
}
