package services

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// LedgerSvc exposes read access to the general ledger
type LedgerSvc interface {
	// LedgerFor returns an account's rows ordered by transaction date, then insertion sequence.
	LedgerFor(ctx context.Context, accountID string) ([]domain.GeneralLedgerRow, error)

	// AccountBalance returns the running balance of the account's latest row.
	AccountBalance(ctx context.Context, accountID string) (int64, error)

	// VerifyAccountLedger replays the account's rows and checks every running balance.
	VerifyAccountLedger(ctx context.Context, accountID string) error
}
