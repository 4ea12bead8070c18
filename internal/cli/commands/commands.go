package commands

import (
	"github.com/spf13/cobra"

	"pmtest/internal/cli"
	"pmtest/internal/config"
	"pmtest/internal/migration"
	"pmtest/internal/storage"
	"pmtest/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Report   *ReportCommand
	Failures *FailuresCommand
	Migrate  *MigrateCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies. cfg is filled in by the
// root command before any command runs, so dependencies read it lazily.
func NewCommands(cfg *config.Config) *Commands {
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	dbManager := migration.NewDatabaseManager(cfg)
	failureViewer := ui.NewFailureViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, jsonStorage, formatter, dbManager, failureViewer),
		List:     NewListCommand(cfg, jsonStorage, formatter),
		Report:   NewReportCommand(cfg, jsonStorage),
		Failures: NewFailuresCommand(jsonStorage, failureViewer),
		Migrate:  NewMigrateCommand(dbManager),
		History:  NewHistoryCommand(cfg, dbManager, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "Config file (default ./pmtest.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ConfigFile)
		if err != nil {
			return err
		}
		*cfg = *loaded
		flags.Apply(cmd, cfg)
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the end-to-end scenarios",
		Long:  "Drive a browser through the selected scenarios one by one, then write the HTML report and the last-run file",
		RunE:  c.Run.Execute,
	}
	addSelectionFlags(runCmd, flags)
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop after the first failing scenario")
	runCmd.Flags().StringVar(&flags.Driver, "driver", config.DefaultDriver, "Browser backend: playwright or chromedp")
	runCmd.Flags().BoolVar(&flags.Headless, "headless", true, "Run the browser without a window")
	runCmd.Flags().StringVar(&flags.BaseURL, "base-url", config.DefaultBaseURL, "Portal under test")
	runCmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the run into the MySQL history database")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run has failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		Long:  "List the scenarios a run would execute; [F] marks those that failed last time",
		RunE:  c.List.Execute,
	}
	addSelectionFlags(listCmd, flags)
	rootCmd.AddCommand(listCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Re-render the HTML report of the last run",
		RunE:  c.Report.Execute,
	}
	rootCmd.AddCommand(reportCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View scenario failures interactively",
		Long:  "Browse the failed scenarios of the last run step by step and mark them resolved",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the run history database",
		Long:  "Create the MySQL database and tables used by run --archive and history",
		RunE:  c.Migrate.Execute,
	}
	rootCmd.AddCommand(migrateCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs",
		RunE:  c.History.Execute,
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 10, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func addSelectionFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter scenarios by name pattern (supports wildcards, e.g. '*Login Test' or '*navigation*')")
	cmd.Flags().StringVarP(&flags.Tag, "tag", "t", "", "Only scenarios with this tag (auth, navigation, logout, registration, pages, slow)")
	cmd.Flags().BoolVar(&flags.SkipSlow, "skip-slow", false, "Skip scenarios tagged slow")
}
