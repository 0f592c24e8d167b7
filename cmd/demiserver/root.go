package main

import (
	"github.com/spf13/cobra"

	"github.com/demigame/demiserver/internal/logging"
)

// Global flags available to all subcommands.
var configFile string

const defaultLogFormat = "json"

// NewRootCmd creates the root command for the demiserver CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demiserver",
		Short: "Demiserver - account and character server for WoW-2D",
		Long: `Demiserver is the authentication, account, and character
persistence server for the WoW-2D client. It speaks the game's binary
packet protocol over TCP and stores state in PostgreSQL.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewAccountCmd())

	return cmd
}

// setupLogging installs the default structured logger.
func setupLogging(format string) error {
	return logging.SetDefault("demiserver", version, format)
}
