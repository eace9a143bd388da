package services

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntry retrieves an entry with its lines.
	GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entries of a legal entity.
	ListJournalEntries(ctx context.Context, legalEntityID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournalEntry validates and stores a balanced draft entry.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PostJournalEntry moves a draft entry to posted and appends its ledger rows.
	PostJournalEntry(ctx context.Context, journalEntryID string, userID string) (*domain.JournalEntry, error)

	// CancelJournalEntry moves a draft entry to cancelled.
	CancelJournalEntry(ctx context.Context, journalEntryID string, userID string) error
}

// JournalTxSvc exposes the journal engine inside a caller-owned transaction so
// that other components (the deal bridge) can compose it atomically.
type JournalTxSvc interface {
	CreateJournalEntryTx(ctx context.Context, tx portsrepo.TxStore, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	PostJournalEntryTx(ctx context.Context, tx portsrepo.TxStore, journalEntryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalTxSvc
}
