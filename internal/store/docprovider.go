package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leapstack-labs/querypad/pkg/playground"
)

// DocumentProvider stores sessions as documents in the SQLite share store
// and hands back the generated document id as the share value.
type DocumentProvider struct {
	store *SQLiteStore
}

// NewDocumentProvider creates a DocumentProvider backed by the given store.
func NewDocumentProvider(store *SQLiteStore) *DocumentProvider {
	return &DocumentProvider{store: store}
}

// ID returns the provider id.
func (p *DocumentProvider) ID() playground.ProviderID {
	return playground.ProviderDocument
}

// Save persists the state as a JSON document and returns its id.
func (p *DocumentProvider) Save(ctx context.Context, state playground.SharedState) (string, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}
	return p.store.SaveDocument(ctx, string(payload))
}

// Load retrieves the document for the given id and decodes it.
func (p *DocumentProvider) Load(ctx context.Context, value string) (map[string]any, error) {
	payload, err := p.store.GetDocument(ctx, value)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("malformed share document %s: %w", value, err)
	}
	return raw, nil
}
