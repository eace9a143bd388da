package services

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// ReportingSvc derives financial statements from the ledger
type ReportingSvc interface {
	// TrialBalance aggregates the ledger per account.
	TrialBalance(ctx context.Context, legalEntityID string) (*domain.TrialBalance, error)

	// IncomeStatement sums revenue and expense balances.
	IncomeStatement(ctx context.Context, legalEntityID string) (*domain.IncomeStatement, error)

	// BalanceSheet buckets assets, liabilities and equity.
	BalanceSheet(ctx context.Context, legalEntityID string) (*domain.BalanceSheet, error)
}
