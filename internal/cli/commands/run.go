package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pmtest/internal/browser"
	"pmtest/internal/config"
	"pmtest/internal/discovery"
	"pmtest/internal/domain"
	"pmtest/internal/execution"
	"pmtest/internal/logging"
	"pmtest/internal/migration"
	"pmtest/internal/recorder"
	"pmtest/internal/report"
	"pmtest/internal/scenario"
	"pmtest/internal/screenshot"
	"pmtest/internal/storage"
	"pmtest/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
	dbManager *migration.DatabaseManager
	viewer    ui.Viewer

	// newLauncher builds the browser backend once config is loaded
	newLauncher func(config.BrowserConfig) (browser.Launcher, error)
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	st storage.Storage,
	formatter *ui.Formatter,
	dbManager *migration.DatabaseManager,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
		dbManager: dbManager,
		viewer:    viewer,

		newLauncher: browser.NewLauncher,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.config
	if err := cfg.Paths.Initialize(); err != nil {
		return err
	}

	logger := logging.NewStderr(cfg.Logger)
	defer logger.Sync() //nolint:errcheck

	filter := discovery.NewFilter(cfg.Flags.Filter, cfg.Flags.Tag, cfg.Flags.SkipSlow)
	selected := filter.Apply(scenario.All())
	if len(selected) == 0 {
		color.Yellow("No scenarios to execute")
		return nil
	}

	launcher, err := rc.newLauncher(cfg.Browser)
	if err != nil {
		return err
	}
	defer func() {
		if err := launcher.Close(); err != nil {
			logger.Warn("Failed to shut down browser", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := recorder.New()
	runner := execution.NewRunner(cfg, launcher, rec, screenshot.New(cfg.Paths.Screenshots), logger)
	suite := execution.NewSuite(runner, cfg.Flags.FailFast)
	suite.SetProgress(ui.NewProgressBar(len(selected)))

	logger.Info("Starting run",
		zap.Int("scenarios", len(selected)),
		zap.String("driver", launcher.Name()),
		zap.String("base_url", cfg.BaseURL))

	results, duration, runErr := suite.Execute(ctx, selected)

	runReport := rec.Report()
	reportPath, err := report.New(cfg.Paths.Reports).WriteFile(runReport)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	output := domain.NewRunResults(uuid.NewString(), runReport, cfg.BaseURL, launcher.Name(), duration)
	output.Meta.ReportPath = reportPath
	if err := rc.storage.Save(output); err != nil {
		return fmt.Errorf("failed to save run results: %w", err)
	}

	if cfg.Flags.Archive {
		if err := rc.archive(ctx, output); err != nil {
			logger.Error("Failed to archive run", zap.Error(err))
			color.Yellow("⚠ Run was not archived: %v", err)
		}
	}

	rc.formatter.PrintSummary(output)

	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}

	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	if cfg.Flags.OpenFailures {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return fmt.Errorf("%d of %d scenario(s) failed", failed, len(results))
}

func (rc *RunCommand) archive(ctx context.Context, output *domain.RunResults) error {
	db, err := rc.dbManager.Open(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}
	defer db.Close()
	return storage.NewMySQLHistory(db).Archive(context.WithoutCancel(ctx), output)
}
