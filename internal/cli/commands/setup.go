// Package commands implements the querypad CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/querypad/internal/cli/config"
	"github.com/leapstack-labs/querypad/internal/store"
)

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Port:          config.DefaultPort,
		BaseURL:       config.DefaultBaseURL,
		StatePath:     config.DefaultStateFile,
		SharesDir:     config.DefaultSharesDir,
		Provider:      config.DefaultProvider,
		SessionSecret: config.DefaultSessionSecret,
	}
}

// buildRegistry constructs the provider registry from the configuration.
// The returned cleanup closes the document store and the file watcher and
// must be called (typically via defer).
func buildRegistry(cfg *config.Config, logger *slog.Logger) (*store.Registry, *store.SQLiteStore, func(), error) {
	// Ensure state directory exists
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	docs := store.NewSQLiteStore()
	if err := docs.Open(cfg.StatePath); err != nil {
		return nil, nil, nil, err
	}
	if err := docs.InitSchema(); err != nil {
		_ = docs.Close()
		return nil, nil, nil, err
	}

	registry, err := store.Associate(docs, cfg.SharesDir, logger)
	if err != nil {
		_ = docs.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		if p, err := registry.Get("file"); err == nil {
			if fp, ok := p.(*store.FileProvider); ok {
				_ = fp.Close()
			}
		}
		_ = docs.Close()
	}

	return registry, docs, cleanup, nil
}
