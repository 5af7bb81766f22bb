package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"logpick.dev/internal/catalog"
	"logpick.dev/internal/config"
	"logpick.dev/internal/format"
	"logpick.dev/internal/history"
	"logpick.dev/internal/picker"
)

const Version = "1.2.0"

// CLI represents the command-line interface
type CLI struct {
	rootCmd          *cobra.Command
	configManager    *config.ConfigManager
	pickerFactory    picker.Factory
	terminalDetector TerminalDetector
}

// NewCLI creates a new CLI instance
func NewCLI() *CLI {
	rootCmd := &cobra.Command{
		Use:   "logpick",
		Short: "Fuzzy multi-select picker for simulator log settings",
		Long: "Logpick presents the catalog of simulator log-setting identifiers in an\n" +
			"interactive fuzzy finder and prints the confirmed selection as a quoted,\n" +
			"comma-separated list ready to paste into a simulator config file.",
		RunE: runPickE, // Default behavior when no subcommand is provided
	}

	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newHistoryCommand())

	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.Flags().String("picker", "", "Picker backend (auto, fzf, builtin)")
	rootCmd.Flags().String("query", "", "Pre-fill the filter input")
	rootCmd.Flags().Bool("no-history", false, "Do not record this selection")
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	return &CLI{
		rootCmd: rootCmd,
		// Remaining systems are lazily initialized in Run
	}
}

// cliContextKey is the context key under which command handlers find
// the CLI instance
type cliContextKey struct{}

// contextWithCLI stores the CLI instance in a context for command handlers
func contextWithCLI(cli *CLI) context.Context {
	return context.WithValue(context.Background(), cliContextKey{}, cli)
}

// cliFromContext extracts the CLI instance from a command context
func cliFromContext(ctx context.Context) *CLI {
	if cli, ok := ctx.Value(cliContextKey{}).(*CLI); ok {
		return cli
	}
	return nil
}

// Run executes the CLI with the given arguments and I/O streams
func (c *CLI) Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Version flag short-circuits before any system initialization
	if len(args) > 1 && (args[1] == "--version" || args[1] == "-v") {
		fmt.Fprintf(stdout, "logpick version %s\n", Version)
		return 0
	}

	c.initializeSystems()

	c.rootCmd.SetArgs(args[1:]) // Skip program name
	c.rootCmd.SetIn(stdin)
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)

	c.rootCmd.SetContext(contextWithCLI(c))

	if err := c.rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		return 1
	}

	return 0
}

// initializeSystems lazily initializes CLI components
func (c *CLI) initializeSystems() {
	if c.configManager == nil {
		c.configManager = config.NewConfigManager()
	}
	if c.pickerFactory == nil {
		c.pickerFactory = picker.NewFactory()
	}
	if c.terminalDetector == nil {
		c.terminalDetector = &DefaultTerminalDetector{}
	}
}

// handleVersionFlag checks and handles the version flag
// Returns true if version was handled and processing should stop
func handleVersionFlag(cmd *cobra.Command) bool {
	version, _ := cmd.Flags().GetBool("version")
	if version {
		cmd.Printf("logpick version %s\n", Version)
		return true
	}
	return false
}

// loadAndValidateConfig loads configuration from flags and files,
// applies overrides, and validates
func loadAndValidateConfig(cmd *cobra.Command, cli *CLI) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	pickerFlag, _ := cmd.Flags().GetString("picker")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = cli.configManager.LoadFromFile(configFile)
		if err != nil {
			cmd.PrintErrf("Error loading config: %v\n", err)
			slog.Error("config load failed", "file", configFile, "error", err)
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		cfg, err = cli.configManager.LoadConfig()
		if err != nil {
			cmd.PrintErrf("Error loading config: %v\n", err)
			slog.Error("config load failed", "error", err)
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	// Apply environment overrides
	cfg = cli.configManager.ApplyEnvironmentOverrides(cfg)

	// Apply command line overrides
	if pickerFlag != "" {
		if !cli.configManager.IsValidPicker(pickerFlag) {
			cmd.PrintErrf("Error: invalid picker '%s'\n", pickerFlag)
			slog.Error("invalid picker flag", "value", pickerFlag)
			return nil, fmt.Errorf("invalid picker '%s': must be one of: %s",
				pickerFlag, strings.Join(cli.configManager.GetSupportedPickers(), ", "))
		}
		cfg.Picker = pickerFlag
		slog.Debug("picker override applied", "value", pickerFlag)
	}

	if noHistory {
		hist := config.HistoryConfig{}
		if cfg.History != nil {
			hist = *cfg.History
		}
		hist.Enabled = false
		cfg.History = &hist
		slog.Debug("history disabled by flag")
	}

	err = cli.configManager.ValidateConfig(cfg)
	if err != nil {
		cmd.PrintErrf("Error: invalid configuration: %v\n", err)
		slog.Error("config validation failed", "error", err)
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// runPickE handles the default behavior: run the interactive picker
// and print the formatted selection on stdout
func runPickE(cmd *cobra.Command, args []string) error {
	cli := cliFromContext(cmd.Context())
	if cli == nil {
		return fmt.Errorf("CLI instance not found in context")
	}

	if handleVersionFlag(cmd) {
		return nil
	}

	cfg, err := loadAndValidateConfig(cmd, cli)
	if err != nil {
		return err
	}

	// All diagnostics go to stderr; stdout carries only the selection
	setupLogging(cli.configManager, cfg, cmd.ErrOrStderr())

	query, _ := cmd.Flags().GetString("query")
	items := catalog.All()

	var result *picker.Result
	pickerName := "stdin"

	if cli.isInteractiveTerminal(int(os.Stdin.Fd())) {
		p, err := cli.pickerFactory.CreatePicker(cfg.Picker)
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			slog.Error("picker creation failed", "picker", cfg.Picker, "error", err)
			return fmt.Errorf("cannot start picker: %w", err)
		}
		pickerName = p.Name()
		slog.Debug("running interactive picker", "picker", pickerName, "items", len(items))

		result, err = p.Pick(cmd.Context(), picker.Request{Items: items, Query: query})
		if err != nil {
			return err
		}
	} else {
		slog.Debug("stdin is not a terminal, reading selection from pipe")
		result = &picker.Result{Selected: readPipedSelection(cmd.InOrStdin())}
	}

	selection := format.SortCatalogOrder(result.Selected)
	fmt.Fprintln(cmd.OutOrStdout(), format.Render(selection))

	if result.Cancelled {
		slog.Debug("selection cancelled")
		return nil
	}

	if len(selection) > 0 {
		cli.recordHistory(cmd.Context(), cfg, pickerName, selection)
	}

	return nil
}

// readPipedSelection reads newline-delimited identifiers from a pipe,
// dropping names that are not in the catalog
func readPipedSelection(r io.Reader) []string {
	var selected []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if !catalog.Contains(name) {
			slog.Warn("ignoring unknown log setting", "name", name)
			continue
		}
		selected = append(selected, name)
	}
	if err := scanner.Err(); err != nil {
		slog.Error("failed to read selection from stdin", "error", err)
	}
	return selected
}

// recordHistory stores a confirmed selection, degrading gracefully
// when the history database is unavailable
func (c *CLI) recordHistory(ctx context.Context, cfg *config.Config, pickerName string, selection []string) {
	if cfg.History == nil || !cfg.History.Enabled {
		slog.Debug("history disabled, skipping record")
		return
	}

	dbPath := c.configManager.ResolveHistoryPath(cfg.History.DatabasePath)
	db, err := history.NewDatabase(dbPath)
	if err != nil {
		slog.Error("failed to open history database, continuing without history",
			"path", dbPath, "error", err)
		return
	}
	defer db.Close()

	if err := history.NewRecorder(db).Record(ctx, pickerName, selection); err != nil {
		slog.Error("failed to record selection, continuing", "error", err)
		return
	}

	slog.Debug("selection recorded", "path", dbPath, "items", len(selection))
}

// setupLogging configures slog with file logging when enabled
func setupLogging(configManager *config.ConfigManager, cfg *config.Config, stderrWriter io.Writer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelWarn // Default level if parsing fails
	}

	// Always include stderr
	writers := []io.Writer{stderrWriter}

	// Add file logging if enabled
	if cfg.FileLogging != nil && cfg.FileLogging.Enabled {
		logFilePath := configManager.ResolveLogFilePath(cfg.FileLogging.Filename)

		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			slog.Error("failed to create log directory", "path", logDir, "error", err)
			// Continue without file logging rather than failing
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   logFilePath,
				MaxSize:    cfg.FileLogging.MaxSizeMB,
				MaxBackups: cfg.FileLogging.MaxBackups,
				MaxAge:     cfg.FileLogging.MaxAgeDays,
				Compress:   cfg.FileLogging.Compress,
			}
			writers = append(writers, fileWriter)
		}
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	slog.Debug("logging setup completed",
		"level", level.String(),
		"writers", len(writers))
}
