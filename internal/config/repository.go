package config

import (
	"fmt"
	"os"

	"focus-tracker/internal/repository"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment reads FT_ENV, defaulting to production
func GetEnvironment() Environment {
	switch Environment(os.Getenv("FT_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}

// OpenStore opens the ledgers selected by the configuration.
// Testing uses an in-memory database and development a local ./.ft directory.
func OpenStore(cfg *Config, env Environment) (*repository.Store, error) {
	switch env {
	case Testing:
		store, err := repository.OpenSQLite(":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize testing store: %w", err)
		}
		return store, nil
	case Development:
		return openConfigured(cfg.Storage.Backend, ".ft")
	default:
		return openConfigured(cfg.Storage.Backend, cfg.Storage.Dir)
	}
}

func openConfigured(name, dir string) (*repository.Store, error) {
	backend, err := repository.ParseBackend(name)
	if err != nil {
		return nil, err
	}
	return repository.Open(backend, dir)
}
