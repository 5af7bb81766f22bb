package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"logpick.dev/internal/catalog"
)

// newListCommand creates the list subcommand
func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the log-setting catalog",
		Long:  "Print the catalog of log-setting identifiers, one per line, in catalog order.",
		RunE:  runListCommandE,
	}

	cmd.Flags().StringP("filter", "f", "", "Only show identifiers containing this substring")
	cmd.Flags().BoolP("groups", "g", false, "Print the group prefixes instead of identifiers")

	return cmd
}

// runListCommandE handles the list subcommand execution
func runListCommandE(cmd *cobra.Command, args []string) error {
	filter, err := cmd.Flags().GetString("filter")
	if err != nil {
		return fmt.Errorf("failed to get filter flag: %w", err)
	}

	groups, err := cmd.Flags().GetBool("groups")
	if err != nil {
		return fmt.Errorf("failed to get groups flag: %w", err)
	}

	if groups {
		for _, group := range catalog.Groups() {
			fmt.Fprintln(cmd.OutOrStdout(), group)
		}
		return nil
	}

	matches := catalog.Filter(filter)
	slog.Debug("listing catalog", "filter", filter, "matches", len(matches))

	for _, name := range matches {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}

	return nil
}
