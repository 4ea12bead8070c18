package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pmtest/internal/migration"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	dbManager *migration.DatabaseManager
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(dbManager *migration.DatabaseManager) *MigrateCommand {
	return &MigrateCommand{dbManager: dbManager}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	color.Cyan("\n╔════════════════════════════════════════════════════════════╗")
	color.Cyan("║               Preparing Run History Database               ║")
	color.Cyan("╚════════════════════════════════════════════════════════════╝\n")

	created, err := mc.dbManager.EnsureDatabase(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if created {
		color.Green("✓ Database created")
	} else {
		color.White("• Database already exists")
	}

	db, err := mc.dbManager.Open(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer db.Close()

	migrator := migration.NewSchemaMigrator(db)
	if err := migrator.Run(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	color.Green("✓ %d table migration(s) applied", migrator.Steps())
	return nil
}
