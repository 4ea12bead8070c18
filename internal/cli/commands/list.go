package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pmtest/internal/config"
	"pmtest/internal/discovery"
	"pmtest/internal/scenario"
	"pmtest/internal/storage"
	"pmtest/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := lc.config.Flags
	selected := discovery.NewFilter(flags.Filter, flags.Tag, flags.SkipSlow).Apply(scenario.All())
	if len(selected) == 0 {
		color.Yellow("No scenarios found")
		return nil
	}

	// A missing last-run file just means nothing is marked
	failed := make(map[string]struct{})
	if last, err := lc.storage.Load(); err == nil {
		for _, c := range last.Report().FailedCases() {
			failed[c.Name] = struct{}{}
		}
	}

	lc.formatter.PrintScenarioList(selected, failed)
	return nil
}
