package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/querypad/internal/cli/config"
	"github.com/leapstack-labs/querypad/internal/share"
	"github.com/leapstack-labs/querypad/internal/store"
	"github.com/leapstack-labs/querypad/pkg/playground"
)

// ShareOptions holds options for the share command.
type ShareOptions struct {
	Dialect       string
	KyselyVersion string
	QueryFile     string
}

// NewShareCommand creates the share command.
func NewShareCommand() *cobra.Command {
	opts := &ShareOptions{}

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Create a share link from a local query file",
		Long: `Create a share link for a playground session.

The query source is read from --query, or from stdin when --query is "-".
The link is printed on stdout.`,
		Example: `  # Share a query against the default dialect
  querypad share --query example.ts

  # Share a sqlite session pinned to an older library release
  querypad share --query example.ts --dialect sqlite --kysely-version 0.24.2

  # Share from stdin through the document provider
  echo 'select 1' | querypad share --query - --provider document`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShare(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dialect, "dialect", string(playground.DefaultDialect), "SQL dialect for the session")
	cmd.Flags().StringVar(&opts.KyselyVersion, "kysely-version", "", "Library version (default: latest supported)")
	cmd.Flags().StringVar(&opts.QueryFile, "query", "", "Query source file, or - for stdin")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func runShare(cmd *cobra.Command, opts *ShareOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	dialect := playground.Dialect(opts.Dialect)
	if !dialect.IsValid() {
		return fmt.Errorf("unknown dialect %q (supported: %v)", opts.Dialect, playground.Dialects())
	}

	ts, err := readSource(cmd.InOrStdin(), opts.QueryFile)
	if err != nil {
		return err
	}

	state := playground.SharedState{
		KyselyVersion: playground.ResolveVersion(opts.KyselyVersion),
		Dialect:       dialect,
		TS:            ts,
	}

	registry, _, cleanup, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	manager := store.NewManager(registry, logger)
	item, err := manager.Save(cmd.Context(), playground.ProviderID(cfg.Provider), state)
	if err != nil {
		return err
	}

	url, err := share.BuildURL(cfg.BaseURL, item)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}

// readSource reads a source file, or stdin when path is "-".
func readSource(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read query file: %w", err)
	}
	return string(data), nil
}
