package domain

import "time"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft     JournalStatus = "draft"
	Posted    JournalStatus = "posted"
	Cancelled JournalStatus = "cancelled"
)

// JournalEntry is a balanced set of debit and credit lines representing one
// business transaction. TotalDebit always equals TotalCredit once stored.
type JournalEntry struct {
	JournalEntryID string        `json:"journalEntryID"`
	EntryNumber    string        `json:"entryNumber"`
	EntryDate      time.Time     `json:"entryDate"`
	Description    string        `json:"description"`
	Reference      string        `json:"reference,omitempty"`
	Status         JournalStatus `json:"status"`
	CurrencyID     string        `json:"currencyID"`
	LegalEntityID  string        `json:"legalEntityID"`
	TotalDebit     int64         `json:"totalDebit"`
	TotalCredit    int64         `json:"totalCredit"`
	PostedAt       *time.Time    `json:"postedAt,omitempty"`
	PostedBy       *string       `json:"postedBy,omitempty"`
	AuditFields

	Lines []JournalEntryLine `json:"lines,omitempty"`
}

// JournalEntryLine affects a single account on exactly one side.
type JournalEntryLine struct {
	JournalEntryLineID string `json:"journalEntryLineID"`
	JournalEntryID     string `json:"journalEntryID"`
	AccountID          string `json:"accountID"`
	DebitAmount        int64  `json:"debitAmount"`
	CreditAmount       int64  `json:"creditAmount"`
	LineNumber         int    `json:"lineNumber"`
	Description        string `json:"description,omitempty"`
}

// SignedAmount is the line's effect on its account: debit minus credit.
func (l JournalEntryLine) SignedAmount() int64 {
	return l.DebitAmount - l.CreditAmount
}
