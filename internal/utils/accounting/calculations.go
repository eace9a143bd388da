package accounting

import (
	"fmt"
	"math"
	"strings"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// Chart code prefixes that mark the short-term buckets of the balance sheet.
const (
	CurrentAssetPrefix     = "1"
	CurrentLiabilityPrefix = "3"
)

// CheckedAdd adds two amounts, failing instead of wrapping around.
func CheckedAdd(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%w: %d + %d", apperrors.ErrAmountOverflow, a, b)
	}
	return a + b, nil
}

// CheckedSub subtracts b from a, failing instead of wrapping around.
func CheckedSub(a, b int64) (int64, error) {
	if b == math.MinInt64 {
		return 0, fmt.Errorf("%w: %d - %d", apperrors.ErrAmountOverflow, a, b)
	}
	return CheckedAdd(a, -b)
}

// ValidateJournalLines checks the structural rules of a set of journal lines
// and returns the debit and credit totals. Accounts are checked by the caller.
func ValidateJournalLines(lines []domain.JournalEntryLine) (totalDebit, totalCredit int64, err error) {
	if len(lines) < 2 {
		return 0, 0, fmt.Errorf("%w: got %d", apperrors.ErrMinLines, len(lines))
	}

	for i, line := range lines {
		if line.DebitAmount < 0 || line.CreditAmount < 0 {
			return 0, 0, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrInvalidAmount, i+1)
		}
		hasDebit := line.DebitAmount > 0
		hasCredit := line.CreditAmount > 0
		if hasDebit == hasCredit {
			return 0, 0, fmt.Errorf("%w: line %d", apperrors.ErrLineSide, i+1)
		}

		if totalDebit, err = CheckedAdd(totalDebit, line.DebitAmount); err != nil {
			return 0, 0, err
		}
		if totalCredit, err = CheckedAdd(totalCredit, line.CreditAmount); err != nil {
			return 0, 0, err
		}
	}

	if totalDebit != totalCredit {
		return 0, 0, fmt.Errorf("%w: debit %d, credit %d", apperrors.ErrUnbalanced, totalDebit, totalCredit)
	}
	return totalDebit, totalCredit, nil
}

// NextRunningBalance derives the running balance of a new ledger row from the
// previous row's balance.
func NextRunningBalance(previous, debit, credit int64) (int64, error) {
	balance, err := CheckedAdd(previous, debit)
	if err != nil {
		return 0, err
	}
	return CheckedSub(balance, credit)
}

// TrialBalanceColumns places a net (debit minus credit) amount in the debit
// or credit column. Exactly one of the results is non-zero unless net is zero.
func TrialBalanceColumns(net int64) (debitBalance, creditBalance int64) {
	if net >= 0 {
		return net, 0
	}
	return 0, -net
}

// NetBalance returns the balance of an account in its normal direction:
// debit minus credit for debit-normal types, credit minus debit otherwise.
func NetBalance(accountType domain.AccountType, totalDebit, totalCredit int64) (int64, error) {
	if accountType.IsDebitNormal() {
		return CheckedSub(totalDebit, totalCredit)
	}
	return CheckedSub(totalCredit, totalDebit)
}

// IsCurrentAsset reports whether an asset code belongs to current assets.
func IsCurrentAsset(code string) bool {
	return strings.HasPrefix(code, CurrentAssetPrefix)
}

// IsCurrentLiability reports whether a liability code belongs to current liabilities.
func IsCurrentLiability(code string) bool {
	return strings.HasPrefix(code, CurrentLiabilityPrefix)
}
