package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nekorytaylor666/infobuh-sub000/pkg/database"
)

// migrateCmd applies pending schema migrations.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running database migrations", "path", cfg.MigrationsPath)
		return database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath)
	},
}
