package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"logpick.dev/internal/history"
)

// newHistoryCommand creates the history subcommand
func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past selections",
		Long:  "Show recently confirmed selections, or the most frequently picked identifiers with --top.",
		RunE:  runHistoryCommandE,
	}

	cmd.Flags().IntP("days", "d", 0, "Only show selections from the last N days")
	cmd.Flags().String("since", "", "Only show selections since a date (\"yesterday\", \"2 days ago\")")
	cmd.Flags().IntP("limit", "n", 0, "Maximum number of rows to show")
	cmd.Flags().BoolP("top", "t", false, "Show the most frequently picked identifiers")

	return cmd
}

// runHistoryCommandE handles the history subcommand execution
func runHistoryCommandE(cmd *cobra.Command, args []string) error {
	cli := cliFromContext(cmd.Context())
	if cli == nil {
		return fmt.Errorf("CLI instance not found in context")
	}

	cfg, err := loadAndValidateConfig(cmd, cli)
	if err != nil {
		return err
	}
	setupLogging(cli.configManager, cfg, cmd.ErrOrStderr())

	days, _ := cmd.Flags().GetInt("days")
	since, _ := cmd.Flags().GetString("since")
	limit, _ := cmd.Flags().GetInt("limit")
	top, _ := cmd.Flags().GetBool("top")

	filter := history.QueryFilter{Days: days, Since: since, Limit: limit}

	historyPath := ""
	if cfg.History != nil {
		historyPath = cfg.History.DatabasePath
	}
	dbPath := cli.configManager.ResolveHistoryPath(historyPath)

	db, err := history.NewDatabase(dbPath)
	if err != nil {
		cmd.PrintErrf("Error opening history database: %v\n", err)
		slog.Error("failed to open history database", "path", dbPath, "error", err)
		return fmt.Errorf("error opening history database: %w", err)
	}
	defer db.Close()

	recorder := history.NewRecorder(db)

	if top {
		return printTopSettings(cmd, recorder, filter)
	}
	return printRecentSelections(cmd, recorder, filter)
}

// printRecentSelections writes recent selections, newest first
func printRecentSelections(cmd *cobra.Command, recorder *history.Recorder, filter history.QueryFilter) error {
	selections, err := recorder.Recent(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("error querying history: %w", err)
	}

	if len(selections) == 0 {
		cmd.Println("No selections recorded")
		return nil
	}

	for _, sel := range selections {
		cmd.Printf("%s  %-8s %s\n",
			sel.Timestamp.Format("2006-01-02 15:04"),
			sel.Picker,
			strings.Join(sel.Items, ", "))
	}

	return nil
}

// printTopSettings writes the most frequently picked identifiers
func printTopSettings(cmd *cobra.Command, recorder *history.Recorder, filter history.QueryFilter) error {
	counts, err := recorder.TopSettings(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("error querying history: %w", err)
	}

	if len(counts) == 0 {
		cmd.Println("No selections recorded")
		return nil
	}

	for _, sc := range counts {
		cmd.Printf("%5d  %s\n", sc.Count, sc.Name)
	}

	return nil
}
