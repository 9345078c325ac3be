// Package cli wires the service commands.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the sync service.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pos-sync-service",
		Short: "Read-only catalog and promotion sync feed for POS clients",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewTokenCommand())

	return cmd
}
