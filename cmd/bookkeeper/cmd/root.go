// Package cmd provides the bookkeeper CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/platform/config"
	"github.com/nekorytaylor666/infobuh-sub000/internal/platform/logging"
	"github.com/nekorytaylor666/infobuh-sub000/internal/repositories/database/pgsql"
	"github.com/nekorytaylor666/infobuh-sub000/pkg/database"
)

var (
	cfg    *config.Config
	logger *slog.Logger
	debug  bool
	userID string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bookkeeper",
	Short: "Multi-tenant double-entry bookkeeping engine",
	Long: `bookkeeper manages legal entities, their charts of accounts, journal
entries and deals on top of PostgreSQL.

Configuration is read from the environment and an optional .env file.

Example:
  bookkeeper migrate
  bookkeeper entity create --bin 123456789012 --name "Acme LLP"
  bookkeeper seed --entity 123456789012
  bookkeeper report trial-balance --entity 123456789012`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		level := cfg.LogLevel
		if debug {
			level = "debug"
		}
		logger = logging.New(os.Stderr, level, cfg.LogFormat)
		slog.SetDefault(logger)

		cmd.SetContext(logging.WithOperation(cmd.Context(), logger, cmd.CommandPath()))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "cli", "user id recorded in audit fields")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(entityCmd)
	rootCmd.AddCommand(currencyCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(dealCmd)
	rootCmd.AddCommand(metricsCmd)
}

// openServices connects to PostgreSQL and wires every service. The returned
// function closes the pool.
func openServices(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	container := services.NewServiceContainer(cfg, pgsql.NewStore(pool), nil)
	return container, func() { database.ClosePgxPool(pool) }, nil
}

// withServices runs fn with a wired service container and closes the pool afterwards.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *portssvc.ServiceContainer) error) error {
	svc, closePool, err := openServices(cmd.Context())
	if err != nil {
		return err
	}
	defer closePool()
	return fn(cmd.Context(), svc)
}

// printJSON writes v to the command's output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
