package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/querypad/internal/cli/config"
	"github.com/leapstack-labs/querypad/internal/loader"
	"github.com/leapstack-labs/querypad/internal/share"
	"github.com/leapstack-labs/querypad/internal/store"
	"github.com/leapstack-labs/querypad/pkg/playground"
)

// itemSink captures the hydrated session for printing.
type itemSink struct {
	item playground.StoreItem
}

func (s *itemSink) ApplyStoreItem(item playground.StoreItem) {
	s.item = item
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <share-url>",
		Short: "Resolve a share link into a validated session",
		Long: `Decode a share link, load the stored session through its provider,
validate it, and print the resulting session as JSON.

Malformed session payloads degrade to defaults field by field; a link
without a share reference is an error.`,
		Example: `  querypad resolve 'https://querypad.dev/#url:q1zLzEvX...'`,
		Args:    cobra.ExactArgs(1),
		RunE:    runResolve,
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	if _, ok := share.ParseURL(args[0]); !ok {
		return fmt.Errorf("no share reference found in URL")
	}

	registry, _, cleanup, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	sink := &itemSink{}
	l := loader.New(store.NewManager(registry, logger), logger)
	if err := l.Hydrate(cmd.Context(), args[0], sink); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(sink.item)
}
