package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/utils/accounting"
)

// ledgerService provides read access to the general ledger.
type ledgerService struct {
	BaseService
	txm portsrepo.TransactionManager
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(txm portsrepo.TransactionManager, options ...ServiceOption) portssvc.LedgerSvc {
	return &ledgerService{BaseService: newBaseService(options), txm: txm}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) LedgerFor(ctx context.Context, accountID string) ([]domain.GeneralLedgerRow, error) {
	var rows []domain.GeneralLedgerRow
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		if _, err := tx.FindAccountByID(ctx, accountID); err != nil {
			return err
		}
		var err error
		rows, err = tx.ListLedgerRowsByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.GeneralLedgerRow{}
	}
	return rows, nil
}

func (s *ledgerService) AccountBalance(ctx context.Context, accountID string) (int64, error) {
	var balance int64
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		if _, err := tx.FindAccountByID(ctx, accountID); err != nil {
			return err
		}
		latest, err := tx.LatestLedgerRow(ctx, accountID)
		if err != nil {
			return err
		}
		if latest != nil {
			balance = latest.RunningBalance
		}
		return nil
	})
	return balance, err
}

// VerifyAccountLedger replays an account's rows in insertion order and checks
// that each stored running balance equals the sum of the signed effects so far.
func (s *ledgerService) VerifyAccountLedger(ctx context.Context, accountID string) error {
	rows, err := s.LedgerFor(ctx, accountID)
	if err != nil {
		return err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Sequence < rows[j].Sequence })

	var balance int64
	for _, row := range rows {
		balance, err = accounting.NextRunningBalance(balance, row.DebitAmount, row.CreditAmount)
		if err != nil {
			return err
		}
		if row.RunningBalance != balance {
			err := fmt.Errorf("%w: ledger row %d of account %s has running balance %d, expected %d",
				apperrors.ErrValidation, row.Sequence, accountID, row.RunningBalance, balance)
			s.LogError(ctx, err, "Ledger verification failed", slog.String("account_id", accountID))
			return err
		}
	}
	return nil
}
