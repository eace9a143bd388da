package cmd

import (
	"context"

	"github.com/spf13/cobra"

	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

var currencyCmd = &cobra.Command{
	Use:   "currency",
	Short: "Manage currencies",
}

var currencyReq dto.CreateCurrencyRequest

var currencyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a currency",
	Long: `Register a currency. At most one currency may be the base currency.

Example:
  bookkeeper currency create --code KZT --name Tenge --decimals 2 --base`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			currency, err := svc.Currency.CreateCurrency(ctx, currencyReq, userID)
			if err != nil {
				return err
			}
			return printJSON(cmd, currency)
		})
	},
}

var currencyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List currencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			list, err := svc.Currency.ListCurrencies(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, list)
		})
	},
}

func init() {
	currencyCreateCmd.Flags().StringVar(&currencyReq.Code, "code", "", "ISO 4217 code")
	currencyCreateCmd.Flags().StringVar(&currencyReq.Name, "name", "", "currency name")
	currencyCreateCmd.Flags().Int32Var(&currencyReq.Decimals, "decimals", 2, "number of minor-unit digits")
	currencyCreateCmd.Flags().BoolVar(&currencyReq.IsBaseCurrency, "base", false, "mark as the base currency")
	_ = currencyCreateCmd.MarkFlagRequired("code")
	_ = currencyCreateCmd.MarkFlagRequired("name")

	currencyCmd.AddCommand(currencyCreateCmd, currencyListCmd)
}
