package cmd

import (
	"context"

	"github.com/spf13/cobra"

	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

var reportEntityBIN string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print financial reports as JSON",
	Long: `Print financial reports of a legal entity as JSON. Amounts are shown
in major units of the base currency.

Example:
  bookkeeper report balance-sheet --entity 123456789012`,
}

// reportCommand builds a report subcommand around a render function.
func reportCommand(use, short string, render func(ctx context.Context, svc *portssvc.ServiceContainer, legalEntityID string) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
				entity, err := resolveEntity(ctx, svc, reportEntityBIN)
				if err != nil {
					return err
				}
				out, err := render(ctx, svc, entity.LegalEntityID)
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportEntityBIN, "entity", "", "BIN of the legal entity")
	_ = reportCmd.MarkPersistentFlagRequired("entity")

	reportCmd.AddCommand(
		reportCommand("trial-balance", "Per-account net balances", func(ctx context.Context, svc *portssvc.ServiceContainer, id string) (any, error) {
			base, err := svc.Currency.GetBaseCurrency(ctx)
			if err != nil {
				return nil, err
			}
			tb, err := svc.Reporting.TrialBalance(ctx, id)
			if err != nil {
				return nil, err
			}
			return dto.ToTrialBalanceResponse(*base, *tb), nil
		}),
		reportCommand("income-statement", "Revenue, expenses and net income", func(ctx context.Context, svc *portssvc.ServiceContainer, id string) (any, error) {
			base, err := svc.Currency.GetBaseCurrency(ctx)
			if err != nil {
				return nil, err
			}
			is, err := svc.Reporting.IncomeStatement(ctx, id)
			if err != nil {
				return nil, err
			}
			return dto.ToIncomeStatementResponse(*base, *is), nil
		}),
		reportCommand("balance-sheet", "Assets, liabilities and equity", func(ctx context.Context, svc *portssvc.ServiceContainer, id string) (any, error) {
			base, err := svc.Currency.GetBaseCurrency(ctx)
			if err != nil {
				return nil, err
			}
			bs, err := svc.Reporting.BalanceSheet(ctx, id)
			if err != nil {
				return nil, err
			}
			return dto.ToBalanceSheetResponse(*base, *bs), nil
		}),
	)
}
