// Package config provides YAML-based configuration loading for Parley.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Parley configuration, loaded from config.yaml.
type Config struct {
	Listen   string         `yaml:"listen"`
	Pacing   string         `yaml:"pacing"`
	Database DatabaseConfig `yaml:"database"`
	Backend  BackendConfig  `yaml:"backend"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// DatabaseConfig holds connection settings for the negotiation history store.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// BackendConfig selects the evaluation backend. Mode "scripted" runs the
// built-in deterministic evaluators; "remote" calls an external service.
type BackendConfig struct {
	Mode  string `yaml:"mode"`
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// NotifyConfig configures outcome notifications and the activity digest.
type NotifyConfig struct {
	Platform string `yaml:"platform"`
	Token    string `yaml:"token"`
	Channel  string `yaml:"channel"`
	Digest   string `yaml:"digest"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Pacing == "" {
		c.Pacing = "demo"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = "parley.db"
	}
	if c.Database.Driver == "mysql" {
		if c.Database.Host == "" {
			c.Database.Host = "127.0.0.1"
		}
		if c.Database.Port == 0 {
			c.Database.Port = 3306
		}
		if c.Database.Name == "" {
			c.Database.Name = "parley"
		}
	}
	if c.Backend.Mode == "" {
		c.Backend.Mode = "scripted"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Pacing {
	case "demo", "instant":
	default:
		errs = append(errs, fmt.Sprintf("pacing must be demo or instant, got %q", c.Pacing))
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver must be sqlite or mysql, got %q", c.Database.Driver))
	}
	if c.Database.Driver == "mysql" && c.Database.User == "" {
		errs = append(errs, "database.user is required for mysql")
	}
	switch c.Backend.Mode {
	case "scripted":
	case "remote":
		if c.Backend.URL == "" {
			errs = append(errs, "backend.url is required for remote mode")
		}
	default:
		errs = append(errs, fmt.Sprintf("backend.mode must be scripted or remote, got %q", c.Backend.Mode))
	}
	if c.Notify.Platform != "" {
		switch c.Notify.Platform {
		case "slack", "discord":
			if c.Notify.Token == "" {
				errs = append(errs, fmt.Sprintf("notify.token is required for %s", c.Notify.Platform))
			}
			if c.Notify.Channel == "" {
				errs = append(errs, fmt.Sprintf("notify.channel is required for %s", c.Notify.Platform))
			}
		default:
			errs = append(errs, fmt.Sprintf("notify.platform must be slack or discord, got %q", c.Notify.Platform))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
