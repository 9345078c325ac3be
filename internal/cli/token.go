package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/glad47/pos-sync-service/internal/auth"
	"github.com/glad47/pos-sync-service/internal/config"
	"github.com/glad47/pos-sync-service/internal/db"
)

// NewTokenCommand groups token store operations.
func NewTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}
	cmd.AddCommand(newTokenCreateCommand())
	return cmd
}

func newTokenCreateCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Mint an API token and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			pool, err := db.NewPostgres(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			token, err := auth.NewTokenRepo(pool).Create(cmd.Context(), time.Duration(days)*24*time.Hour)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "token validity in days")
	return cmd
}
