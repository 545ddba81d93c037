package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/querypad/internal/cli/config"
	"github.com/leapstack-labs/querypad/internal/store"
	"github.com/leapstack-labs/querypad/internal/ui"
)

// Document shares older than this are swept while the service runs.
// URL shares are self-contained and file shares are user-managed, so
// retention only applies to the document store.
const (
	shareRetention = 90 * 24 * time.Hour
	sweepInterval  = time.Hour
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the querypad share service",
		Long: `Start the HTTP share service.

The service provides:
- POST /api/shares to create a share link
- GET /api/shares/{provider}/{value} to resolve a validated session
- GET /s/{provider}/{value} short links redirecting into the playground
- GET /api/meta and /api/recent`,
		Example: `  # Start on the configured port
  querypad serve

  # Start on a custom port
  querypad serve --port 3000`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	registry, docs, cleanup, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	go sweepOldShares(cmd.Context(), docs, logger)

	server := ui.NewServer(ui.Config{
		Manager:       store.NewManager(registry, logger),
		Registry:      registry,
		Port:          cfg.Port,
		BaseURL:       cfg.BaseURL,
		SessionSecret: cfg.SessionSecret,
		Logger:        logger,
	})

	return server.Serve(cmd.Context())
}

// sweepOldShares periodically removes expired document shares until the
// context is cancelled.
func sweepOldShares(ctx context.Context, docs *store.SQLiteStore, logger *slog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := docs.DeleteOldDocuments(ctx, shareRetention)
			if err != nil {
				logger.Warn("failed to sweep expired shares", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("swept expired shares", "count", deleted)
			}
		}
	}
}
