// Package store implements the share storage backends and the registry
// and manager that dispatch to them. Every backend satisfies
// playground.StoreProvider; the rest of the application only ever sees
// that interface plus opaque share values.
package store

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/leapstack-labs/querypad/pkg/playground"
)

// maxEncodedState caps how much a decoded share payload may expand to.
// Links are user-supplied, so the decompressor must not be open-ended.
const maxEncodedState = 1 << 20

// URLProvider embeds the whole session in the share value itself: JSON,
// deflate-compressed, in URL-safe base64. Links are self-contained and
// need no server-side storage.
type URLProvider struct{}

// NewURLProvider creates a new URLProvider.
func NewURLProvider() *URLProvider {
	return &URLProvider{}
}

// ID returns the provider id.
func (p *URLProvider) ID() playground.ProviderID {
	return playground.ProviderURL
}

// Save encodes the state into an opaque, URL-safe value.
func (p *URLProvider) Save(_ context.Context, state playground.SharedState) (string, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}

	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := zw.Write(payload); err != nil {
		return "", fmt.Errorf("failed to compress state: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to compress state: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Load decodes a value produced by Save back into a raw document.
func (p *URLProvider) Load(_ context.Context, value string) (map[string]any, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("malformed share value: %w", err)
	}

	zr := flate.NewReader(bytes.NewReader(compressed))
	defer func() { _ = zr.Close() }()

	payload, err := io.ReadAll(io.LimitReader(zr, maxEncodedState))
	if err != nil {
		return nil, fmt.Errorf("malformed share value: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("malformed share value: %w", err)
	}
	return raw, nil
}
