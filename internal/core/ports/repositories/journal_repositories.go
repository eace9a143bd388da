package repositories

import (
	"context"
	"time"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// JournalCursor marks the position after which a journal listing continues.
type JournalCursor struct {
	EntryDate   time.Time
	EntryNumber string
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalEntryByID retrieves an entry together with its lines in line-number order.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries lists entries of a legal entity ordered by (entry date, entry number),
	// starting after the cursor when one is given. Lines are not populated.
	ListJournalEntries(ctx context.Context, legalEntityID string, limit int, after *JournalCursor) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// NextEntryNumber reserves the next unique entry number.
	NextEntryNumber(ctx context.Context) (string, error)

	// SaveJournalEntry persists an entry header and all of its lines.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// FindJournalEntryForUpdate retrieves an entry with its lines and locks it
	// until the surrounding transaction ends.
	FindJournalEntryForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// UpdateJournalEntryStatus changes the status. Moving to posted also records PostedAt/PostedBy.
	UpdateJournalEntryStatus(ctx context.Context, journalEntryID string, status domain.JournalStatus, userID string, now time.Time) error
}
