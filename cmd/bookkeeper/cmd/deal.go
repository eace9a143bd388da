package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

var (
	dealID         string
	payAmount      string
	payDate        string
	payDescription string
	payAutoPost    bool
)

var dealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Inspect deals and record payments",
}

var dealReconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Print the reconciliation report of a deal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			report, err := svc.Deal.GenerateReconciliationReport(ctx, dealID)
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		})
	},
}

var dealEntriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List the journal entries linked to a deal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			entries, err := svc.Deal.ListDealEntries(ctx, dealID)
			if err != nil {
				return err
			}
			return printJSON(cmd, entries)
		})
	},
}

var dealPayCmd = &cobra.Command{
	Use:   "pay",
	Short: "Record a payment on a deal",
	Long: `Record a payment on a deal. The amount is given in major units of the
deal currency, e.g. 1500.25. Seller deals book money received, buyer deals
book money paid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, svc *portssvc.ServiceContainer) error {
			deal, err := svc.Deal.GetDeal(ctx, dealID)
			if err != nil {
				return err
			}
			currency, err := svc.Currency.GetCurrency(ctx, deal.CurrencyID)
			if err != nil {
				return err
			}
			req, err := paymentRequest(*currency, payAmount, payDate, payDescription, payAutoPost)
			if err != nil {
				return err
			}

			var result *domain.BridgeResult
			if deal.Role == domain.DealRoleBuyer {
				result, err = svc.Deal.RecordExpensePayment(ctx, deal.DealID, req, userID)
			} else {
				result, err = svc.Deal.RecordPayment(ctx, deal.DealID, req, userID)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		})
	},
}

// paymentRequest builds a payment from CLI input, converting the major-unit
// amount with the deal currency's precision.
func paymentRequest(currency domain.Currency, amount, date, description string, autoPost bool) (dto.RecordPaymentRequest, error) {
	units, err := currency.ParseMinorUnits(amount)
	if err != nil {
		return dto.RecordPaymentRequest{}, err
	}
	paymentDate, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return dto.RecordPaymentRequest{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", apperrors.ErrValidation, date)
	}
	return dto.RecordPaymentRequest{
		Amount:      units,
		PaymentDate: paymentDate,
		Description: description,
		AutoPost:    autoPost,
	}, nil
}

func init() {
	for _, c := range []*cobra.Command{dealReconcileCmd, dealEntriesCmd, dealPayCmd} {
		c.Flags().StringVar(&dealID, "id", "", "deal id")
		_ = c.MarkFlagRequired("id")
	}
	dealPayCmd.Flags().StringVar(&payAmount, "amount", "", "amount in major units, e.g. 1500.25")
	dealPayCmd.Flags().StringVar(&payDate, "date", time.Now().UTC().Format(time.DateOnly), "payment date (YYYY-MM-DD)")
	dealPayCmd.Flags().StringVar(&payDescription, "description", "", "entry description")
	dealPayCmd.Flags().BoolVar(&payAutoPost, "post", false, "post the entry immediately")
	_ = dealPayCmd.MarkFlagRequired("amount")
	dealCmd.AddCommand(dealReconcileCmd, dealEntriesCmd, dealPayCmd)
}
