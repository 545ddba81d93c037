package ui

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/querypad/internal/share"
	"github.com/leapstack-labs/querypad/internal/store"
	"github.com/leapstack-labs/querypad/pkg/playground"
)

const (
	sessionName     = "querypad"
	recentKey       = "recent"
	maxRecentShares = 10
	maxBodyBytes    = 1 << 20
)

func init() {
	// Recent share lists are stored in the cookie session via gob.
	gob.Register([]string{})
}

// Handlers provides HTTP handlers for the share service.
type Handlers struct {
	manager      *store.Manager
	registry     *store.Registry
	sessionStore sessions.Store
	baseURL      string
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(manager *store.Manager, registry *store.Registry, sessionStore sessions.Store, baseURL string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		manager:      manager,
		registry:     registry,
		sessionStore: sessionStore,
		baseURL:      baseURL,
		logger:       logger,
	}
}

// CreateShare persists the posted session and returns a share link.
// The body is untrusted: it is decoded into a plain map and normalized
// field-by-field, so a malformed payload produces a default share rather
// than an error.
func (h *Handlers) CreateShare(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	providerID := playground.ProviderURL
	if p, ok := body["provider"].(string); ok && p != "" {
		providerID = playground.ProviderID(p)
	}

	state := playground.NormalizeState(body)

	item, err := h.manager.Save(r.Context(), providerID, state)
	if errors.Is(err, store.ErrUnknownProvider) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to save share", "provider", providerID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to save share")
		return
	}

	shareURL, err := share.BuildURL(h.baseURL, item)
	if err != nil {
		h.logger.Error("failed to build share URL", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to build share URL")
		return
	}

	h.recordRecent(w, r, shareURL)
	h.writeJSON(w, http.StatusCreated, ShareResponse{
		Provider: string(item.Provider),
		Value:    item.Value,
		URL:      shareURL,
	})
}

// GetShare loads a share and returns the validated, UI-ready session.
func (h *Handlers) GetShare(w http.ResponseWriter, r *http.Request) {
	providerID := playground.ProviderID(chi.URLParam(r, "provider"))
	value := chi.URLParam(r, "value")

	raw, err := h.manager.Load(r.Context(), providerID, value)
	if errors.Is(err, store.ErrUnknownProvider) || errors.Is(err, store.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "share not found")
		return
	}
	if err != nil {
		// Malformed values and backend failures both surface here; the
		// client falls back to a default session either way.
		h.logger.Warn("failed to load share", "provider", providerID, "error", err)
		h.writeError(w, http.StatusNotFound, "share not found")
		return
	}

	h.writeJSON(w, http.StatusOK, playground.NormalizeItem(raw))
}

// ResolveShare redirects a short link to the playground with the share
// reference restored in the URL fragment.
func (h *Handlers) ResolveShare(w http.ResponseWriter, r *http.Request) {
	item := playground.ShareItem{
		Provider: playground.ProviderID(chi.URLParam(r, "provider")),
		Value:    chi.URLParam(r, "value"),
	}

	if _, err := h.registry.Get(item.Provider); err != nil {
		h.writeError(w, http.StatusNotFound, "share not found")
		return
	}

	target, err := share.BuildURL(h.baseURL, item)
	if err != nil {
		h.logger.Error("failed to build share URL", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to build share URL")
		return
	}

	h.recordRecent(w, r, target)
	http.Redirect(w, r, target, http.StatusFound)
}

// RecentShares returns the share links recently created or visited by
// this browser session.
func (h *Handlers) RecentShares(w http.ResponseWriter, r *http.Request) {
	session, _ := h.sessionStore.Get(r, sessionName)

	shares, _ := session.Values[recentKey].([]string)
	if shares == nil {
		shares = []string{}
	}
	h.writeJSON(w, http.StatusOK, RecentResponse{Shares: shares})
}

// Meta lists supported dialects, providers, and library versions.
func (h *Handlers) Meta(w http.ResponseWriter, _ *http.Request) {
	dialects := make([]string, 0, len(playground.Dialects()))
	for _, d := range playground.Dialects() {
		dialects = append(dialects, string(d))
	}

	providers := make([]string, 0, len(h.registry.IDs()))
	for _, id := range h.registry.IDs() {
		providers = append(providers, string(id))
	}

	h.writeJSON(w, http.StatusOK, MetaResponse{
		Dialects:      dialects,
		Providers:     providers,
		Versions:      playground.KnownVersions(),
		LatestVersion: playground.LatestVersion(),
	})
}

// recordRecent prepends url to the session's recent share list.
func (h *Handlers) recordRecent(w http.ResponseWriter, r *http.Request, url string) {
	session, _ := h.sessionStore.Get(r, sessionName)

	recent, _ := session.Values[recentKey].([]string)
	updated := []string{url}
	for _, u := range recent {
		if u == url {
			continue
		}
		updated = append(updated, u)
		if len(updated) == maxRecentShares {
			break
		}
	}

	session.Values[recentKey] = updated
	if err := session.Save(r, w); err != nil {
		h.logger.Warn("failed to save session", "error", err)
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}
