package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pmtest/internal/config"
	"pmtest/internal/migration"
	"pmtest/internal/storage"
	"pmtest/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config    *config.Config
	dbManager *migration.DatabaseManager
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, dbManager *migration.DatabaseManager, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{config: cfg, dbManager: dbManager, formatter: formatter}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := hc.dbManager.Open(ctx)
	if err != nil {
		return fmt.Errorf("open history database (did you run `pmtest migrate`?): %w", err)
	}
	defer db.Close()

	runs, err := storage.NewMySQLHistory(db).Recent(ctx, hc.config.Flags.Limit)
	if err != nil {
		return err
	}
	hc.formatter.PrintHistory(runs)
	return nil
}
