package domain

import "time"

// GeneralLedgerRow records the effect of one posted journal line on an
// account. Rows are append-only; Sequence is the global insertion order and
// breaks ties between rows with the same transaction date.
type GeneralLedgerRow struct {
	GeneralLedgerRowID string    `json:"generalLedgerRowID"`
	Sequence           int64     `json:"sequence"`
	AccountID          string    `json:"accountID"`
	JournalEntryID     string    `json:"journalEntryID"`
	JournalEntryLineID string    `json:"journalEntryLineID"`
	LegalEntityID      string    `json:"legalEntityID"`
	TransactionDate    time.Time `json:"transactionDate"`
	DebitAmount        int64     `json:"debitAmount"`
	CreditAmount       int64     `json:"creditAmount"`
	RunningBalance     int64     `json:"runningBalance"`
	Description        string    `json:"description,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// SignedAmount is the row's effect on the running balance.
func (r GeneralLedgerRow) SignedAmount() int64 {
	return r.DebitAmount - r.CreditAmount
}

// LedgerTotals holds the aggregated debit and credit sums of one account.
type LedgerTotals struct {
	AccountID   string `json:"accountID"`
	TotalDebit  int64  `json:"totalDebit"`
	TotalCredit int64  `json:"totalCredit"`
}
