package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pmtest/internal/config"
	"pmtest/internal/report"
	"pmtest/internal/storage"
)

// ReportCommand handles the report command
type ReportCommand struct {
	config  *config.Config
	storage storage.Storage
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(cfg *config.Config, st storage.Storage) *ReportCommand {
	return &ReportCommand{config: cfg, storage: st}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := rc.storage.Load()
	if err != nil {
		return fmt.Errorf("no previous run to report on (run `pmtest run` first): %w", err)
	}

	path, err := report.New(rc.config.Paths.Reports).WriteFile(results.Report())
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	results.Meta.ReportPath = path
	if err := rc.storage.SaveOutput(results); err != nil {
		return fmt.Errorf("failed to update run results: %w", err)
	}

	color.Green("✓ Report written to %s", path)
	return nil
}
