package repositories

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// LedgerReader defines read operations for the general ledger
type LedgerReader interface {
	// ListLedgerRowsByAccount returns an account's rows ordered by transaction date, then sequence.
	ListLedgerRowsByAccount(ctx context.Context, accountID string) ([]domain.GeneralLedgerRow, error)

	// LatestLedgerRow returns the most recently appended row of an account, or nil when it has none.
	LatestLedgerRow(ctx context.Context, accountID string) (*domain.GeneralLedgerRow, error)

	// SumLedgerByAccount aggregates debit and credit totals per account of a legal entity.
	SumLedgerByAccount(ctx context.Context, legalEntityID string) ([]domain.LedgerTotals, error)
}

// LedgerWriter appends to the general ledger. There is no update or delete.
type LedgerWriter interface {
	// AppendLedgerRow inserts a row and sets its Sequence.
	AppendLedgerRow(ctx context.Context, row *domain.GeneralLedgerRow) error
}
