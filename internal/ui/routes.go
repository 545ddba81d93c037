package ui

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/querypad/internal/store"
)

// SetupRoutes configures all routes for the share service.
func SetupRoutes(
	router chi.Router,
	manager *store.Manager,
	registry *store.Registry,
	sessionStore sessions.Store,
	baseURL string,
	logger *slog.Logger,
) error {
	h := NewHandlers(manager, registry, sessionStore, baseURL, logger)

	router.Route("/api", func(r chi.Router) {
		r.Post("/shares", h.CreateShare)
		r.Get("/shares/{provider}/{value}", h.GetShare)
		r.Get("/recent", h.RecentShares)
		r.Get("/meta", h.Meta)
	})

	// Short link: redirects to the playground with the share fragment.
	router.Get("/s/{provider}/{value}", h.ResolveShare)

	return nil
}
