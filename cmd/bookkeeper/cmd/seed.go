package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
	"github.com/nekorytaylor666/infobuh-sub000/internal/seed"
)

var (
	seedEntityBIN string
	seedChartFile string
	seedCreatedBy string
)

// seedCmd loads a chart of accounts into a legal entity.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the chart of accounts of a legal entity",
	Long: `Seed the chart of accounts of a legal entity. Rows may appear in any
order; codes that already exist are left untouched.

Without --chart the bundled default chart is used.

Example:
  bookkeeper seed --entity 123456789012 --created-by admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chartFile := cfg.ChartFile
		if seedChartFile != "" {
			chartFile = seedChartFile
		}
		createdBy := cfg.SeedCreatedBy
		if seedCreatedBy != "" {
			createdBy = seedCreatedBy
		}
		if createdBy == "" {
			return fmt.Errorf("seed creator not set: use --created-by or SEED_CREATED_BY")
		}

		rows, err := seed.LoadChart(chartFile)
		if err != nil {
			return err
		}

		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			entity, err := resolveEntity(ctx, svc, seedEntityBIN)
			if err != nil {
				return err
			}
			result, err := svc.Account.SeedChartOfAccounts(ctx, entity.LegalEntityID, dto.SeedChartRequest{Rows: rows, CreatedBy: createdBy})
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		})
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedEntityBIN, "entity", "", "BIN of the legal entity")
	seedCmd.Flags().StringVar(&seedChartFile, "chart", "", "chart of accounts YAML file (overrides CHART_FILE)")
	seedCmd.Flags().StringVar(&seedCreatedBy, "created-by", "", "creator recorded on seeded accounts (overrides SEED_CREATED_BY)")
	_ = seedCmd.MarkFlagRequired("entity")
}
