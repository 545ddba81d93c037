package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/leapstack-labs/querypad/pkg/playground"
)

// FileProvider keeps one JSON document per share under a local directory.
// Loads are served from an in-memory cache; a directory watcher evicts
// entries when files change on disk outside this process.
type FileProvider struct {
	dir     string
	logger  *slog.Logger
	watcher *fsnotify.Watcher

	mu    sync.RWMutex
	cache map[string][]byte
}

// NewFileProvider creates a FileProvider rooted at dir, creating the
// directory if needed. Callers must Close it to stop the watcher.
func NewFileProvider(dir string, logger *slog.Logger) (*FileProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create shares directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create shares watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch shares directory: %w", err)
	}

	p := &FileProvider{
		dir:     dir,
		logger:  logger,
		watcher: watcher,
		cache:   make(map[string][]byte),
	}
	go p.watch()

	return p, nil
}

// ID returns the provider id.
func (p *FileProvider) ID() playground.ProviderID {
	return playground.ProviderFile
}

// Save persists the state as a JSON file and returns the share id.
func (p *FileProvider) Save(_ context.Context, state playground.SharedState) (string, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}

	id := uuid.New().String()
	if err := os.WriteFile(p.sharePath(id), payload, 0600); err != nil {
		return "", fmt.Errorf("failed to write share file: %w", err)
	}

	p.mu.Lock()
	p.cache[id] = payload
	p.mu.Unlock()

	return id, nil
}

// Load reads the share document for the given id.
// Returns ErrNotFound if no file exists for the id.
func (p *FileProvider) Load(_ context.Context, value string) (map[string]any, error) {
	// Share ids are uuids; anything else is rejected before it can name a path.
	if err := uuid.Validate(value); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, value)
	}

	p.mu.RLock()
	payload, ok := p.cache[value]
	p.mu.RUnlock()

	if !ok {
		var err error
		payload, err = os.ReadFile(p.sharePath(value))
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, value)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read share file: %w", err)
		}

		p.mu.Lock()
		p.cache[value] = payload
		p.mu.Unlock()
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("malformed share file %s: %w", value, err)
	}
	return raw, nil
}

// Close stops the directory watcher.
func (p *FileProvider) Close() error {
	return p.watcher.Close()
}

func (p *FileProvider) sharePath(id string) string {
	return filepath.Join(p.dir, id+".json")
}

// watch evicts cached entries when share files change on disk.
func (p *FileProvider) watch() {
	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			id := strings.TrimSuffix(filepath.Base(event.Name), ".json")

			p.mu.Lock()
			delete(p.cache, id)
			p.mu.Unlock()

			p.logger.Debug("evicted cached share", "id", id, "op", event.Op.String())

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("shares watcher error", "error", err)
		}
	}
}
