package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/querypad/pkg/playground"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display querypad version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "querypad v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  build date: %s\n", buildDate)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  commit:     %s\n", gitCommit)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  latest supported kysely: %s\n", playground.LatestVersion())
		},
	}
}
