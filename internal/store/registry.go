package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/querypad/pkg/playground"
)

// ErrUnknownProvider is returned when a share references a provider id
// that is not in the registry. The id set is closed, so hitting this from
// internal code is a defect; it only legitimately occurs for ids arriving
// in untrusted share links.
var ErrUnknownProvider = errors.New("unknown store provider")

// Registry maps every provider id to its single provider instance.
// It is built once at startup and read-only afterward.
type Registry struct {
	providers map[playground.ProviderID]playground.StoreProvider
}

// NewRegistry builds the id→provider table from the given instances.
// Keys come from each provider's own ID, so the "registry key matches
// provider id" invariant holds by construction.
func NewRegistry(providers ...playground.StoreProvider) *Registry {
	m := make(map[playground.ProviderID]playground.StoreProvider, len(providers))
	for _, p := range providers {
		m[p.ID()] = p
	}
	return &Registry{providers: m}
}

// Associate wires one provider instance per declared provider id: the
// URL codec provider, the SQLite document provider on docs, and the file
// provider rooted at sharesDir. A provider that cannot be constructed is
// a startup failure, not a per-call error.
func Associate(docs *SQLiteStore, sharesDir string, logger *slog.Logger) (*Registry, error) {
	files, err := NewFileProvider(sharesDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct file provider: %w", err)
	}

	return NewRegistry(
		NewURLProvider(),
		NewDocumentProvider(docs),
		files,
	), nil
}

// Get returns the provider registered for id.
func (r *Registry) Get(id playground.ProviderID) (playground.StoreProvider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
	}
	return p, nil
}

// IDs returns the registered provider ids in declaration order.
func (r *Registry) IDs() []playground.ProviderID {
	ids := make([]playground.ProviderID, 0, len(r.providers))
	for _, id := range playground.ProviderIDs() {
		if _, ok := r.providers[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
