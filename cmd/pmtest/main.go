package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pmtest/internal/cli"
	"pmtest/internal/cli/commands"
	"pmtest/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "pmtest",
		Short: "End-to-end browser suite for the Pengaduan Masyarakat portal",
		Long: `Drives a real browser through login, navigation, logout and registration flows of the
Pengaduan Masyarakat complaint portal, capturing a screenshot at every checkpoint and
rendering an HTML report of the run.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Defaults until the root command loads file and environment settings
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
