package dto

import (
	"time"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// JournalLineRequest is one line of a journal entry in smallest currency units.
type JournalLineRequest struct {
	AccountID    string `json:"accountID" validate:"required"`
	DebitAmount  int64  `json:"debitAmount" validate:"min=0"`
	CreditAmount int64  `json:"creditAmount" validate:"min=0"`
	Description  string `json:"description" validate:"max=500"`
}

// CreateJournalEntryRequest defines the header and lines of a new journal entry.
type CreateJournalEntryRequest struct {
	LegalEntityID string               `json:"legalEntityID" validate:"required"`
	EntryDate     time.Time            `json:"entryDate" validate:"required"`
	CurrencyID    string               `json:"currencyID" validate:"required"`
	Description   string               `json:"description" validate:"max=500"`
	Reference     string               `json:"reference" validate:"max=100"`
	Lines         []JournalLineRequest `json:"lines" validate:"required,dive"`
}

// ListJournalEntriesParams holds parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `json:"limit" validate:"min=0,max=500"`
	NextToken *string `json:"nextToken,omitempty"`
}

// ListJournalEntriesResponse is one page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []domain.JournalEntry `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}
