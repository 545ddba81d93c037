package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/querypad/pkg/playground"
)

// Manager orchestrates saving and loading shares through the registry.
// It never interprets share values: they pass through opaque in both
// directions, and raw loaded documents are returned unvalidated.
type Manager struct {
	registry *Registry
	logger   *slog.Logger
}

// NewManager creates a Manager over the given registry.
func NewManager(registry *Registry, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{registry: registry, logger: logger}
}

// Save persists state via the provider registered for id and returns the
// resulting share reference.
func (m *Manager) Save(ctx context.Context, id playground.ProviderID, state playground.SharedState) (playground.ShareItem, error) {
	p, err := m.registry.Get(id)
	if err != nil {
		return playground.ShareItem{}, err
	}

	value, err := p.Save(ctx, state)
	if err != nil {
		return playground.ShareItem{}, fmt.Errorf("failed to save share via %s: %w", id, err)
	}

	m.logger.Debug("saved share", "provider", id, "bytes", len(value))
	return playground.ShareItem{Provider: id, Value: value}, nil
}

// Load retrieves the raw document behind a share value via the provider
// registered for id. The result is untrusted and must be normalized
// before it reaches UI state.
func (m *Manager) Load(ctx context.Context, id playground.ProviderID, value string) (map[string]any, error) {
	p, err := m.registry.Get(id)
	if err != nil {
		return nil, err
	}

	raw, err := p.Load(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("failed to load share via %s: %w", id, err)
	}
	return raw, nil
}
