package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/averill/parley/internal/agents"
	"github.com/averill/parley/internal/agents/remote"
	"github.com/averill/parley/internal/config"
	"github.com/averill/parley/internal/db"
	"github.com/averill/parley/internal/stream"
	"gorm.io/gorm"
)

// defaultConfigPath is where parley looks for configuration by default.
const defaultConfigPath = "parley.yaml"

// loadConfig reads the config file, falling back to built-in defaults when
// the default path does not exist. An explicit path must exist.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// connectFromConfig opens the history database selected by the config.
func connectFromConfig(cfg *config.Config) (*gorm.DB, error) {
	conn, err := db.Connect(db.Options{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Name:     cfg.Database.Name,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// backendFromConfig selects the evaluation backend.
func backendFromConfig(cfg *config.Config) (agents.Backend, error) {
	switch cfg.Backend.Mode {
	case "", "scripted":
		return agents.Deterministic{}, nil
	case "remote":
		return remote.New(cfg.Backend.URL, cfg.Backend.Token), nil
	}
	return nil, fmt.Errorf("unknown backend mode %q", cfg.Backend.Mode)
}

// pacerFromConfig selects the event pacing profile.
func pacerFromConfig(cfg *config.Config) stream.Pacer {
	if cfg.Pacing == "instant" {
		return stream.NoDelay()
	}
	return stream.DemoPacer()
}
