package cli

import (
	"fmt"

	database "github.com/sebuszqo/Expendas/db"
	"github.com/sebuszqo/Expendas/internal/config"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Create the database tables",
	Args:    cobra.NoArgs,
	GroupID: "server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		newLogger(cfg)

		dbService, err := database.NewDBService(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("could not initialize database: %w", err)
		}
		defer dbService.Close()

		if err := dbService.Migrate(cmd.Context()); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Schema applied")
		return nil
	},
}
