// Package ui provides the querypad share service HTTP server.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/querypad/internal/store"
)

// Server is the share service HTTP server.
type Server struct {
	manager      *store.Manager
	registry     *store.Registry
	sessionStore *sessions.CookieStore
	port         int
	baseURL      string
	logger       *slog.Logger
}

// Config holds configuration for the share service server.
type Config struct {
	Manager       *store.Manager
	Registry      *store.Registry
	Port          int
	BaseURL       string
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new share service server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		manager:      cfg.Manager,
		registry:     cfg.Registry,
		sessionStore: sessionStore,
		port:         cfg.Port,
		baseURL:      cfg.BaseURL,
		logger:       logger,
	}
}

// Serve starts the share service and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting share service", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := SetupRoutes(r, s.manager, s.registry, s.sessionStore, s.baseURL, s.logger); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down share service...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
