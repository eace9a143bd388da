package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
	"github.com/nekorytaylor666/infobuh-sub000/internal/platform/metrics"
	"github.com/nekorytaylor666/infobuh-sub000/internal/utils/accounting"
	"github.com/nekorytaylor666/infobuh-sub000/internal/utils/pagination"
)

const defaultJournalPageSize = 50

// journalService validates journal entries and posts them to the general ledger.
type journalService struct {
	BaseService
	txm portsrepo.TransactionManager
}

// NewJournalService creates a new JournalService.
func NewJournalService(txm portsrepo.TransactionManager, options ...ServiceOption) portssvc.JournalSvcFacade {
	return &journalService{BaseService: newBaseService(options), txm: txm}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalEntry stores a balanced draft entry and its lines in one transaction.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		var err error
		entry, err = s.CreateJournalEntryTx(ctx, tx, req, creatorUserID)
		return err
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to create journal entry", slog.String("legal_entity_id", req.LegalEntityID))
		return nil, err
	}

	metrics.JournalEntriesCreated.Inc()
	s.LogInfo(ctx, "Journal entry created",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int64("total", entry.TotalDebit))
	return entry, nil
}

// CreateJournalEntryTx validates and stores a draft entry inside the caller's transaction.
func (s *journalService) CreateJournalEntryTx(ctx context.Context, tx portsrepo.TxStore, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	lines := make([]domain.JournalEntryLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalEntryLine{
			JournalEntryLineID: uuid.NewString(),
			JournalEntryID:     entryID,
			AccountID:          l.AccountID,
			DebitAmount:        l.DebitAmount,
			CreditAmount:       l.CreditAmount,
			LineNumber:         i + 1,
			Description:        l.Description,
		}
	}

	totalDebit, totalCredit, err := accounting.ValidateJournalLines(lines)
	if err != nil {
		return nil, err
	}

	if _, err := tx.FindLegalEntityByID(ctx, req.LegalEntityID); err != nil {
		return nil, err
	}

	currency, err := tx.FindCurrencyByID(ctx, req.CurrencyID)
	if err != nil {
		return nil, err
	}
	if !currency.IsActive {
		return nil, fmt.Errorf("%w: currency %s is inactive", apperrors.ErrValidation, currency.Code)
	}

	if err := checkLineAccounts(ctx, tx, req.LegalEntityID, lines); err != nil {
		return nil, err
	}

	entryNumber, err := tx.NextEntryNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}

	entry := domain.JournalEntry{
		JournalEntryID: entryID,
		EntryNumber:    entryNumber,
		EntryDate:      req.EntryDate.UTC(),
		Description:    req.Description,
		Reference:      req.Reference,
		Status:         domain.Draft,
		CurrencyID:     req.CurrencyID,
		LegalEntityID:  req.LegalEntityID,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		AuditFields:    domain.NewAuditFields(creatorUserID, s.Now()),
		Lines:          lines,
	}

	if err := tx.SaveJournalEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	return &entry, nil
}

// checkLineAccounts verifies that every line points at an active account of the legal entity.
func checkLineAccounts(ctx context.Context, tx portsrepo.TxReader, legalEntityID string, lines []domain.JournalEntryLine) error {
	ids := uniqueAccountIDs(lines)
	accounts, err := tx.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return fmt.Errorf("%w: account %s on line %d", apperrors.ErrNotFound, line.AccountID, line.LineNumber)
		}
		if acc.LegalEntityID != legalEntityID {
			return fmt.Errorf("%w: account %s on line %d", apperrors.ErrCrossEntity, acc.Code, line.LineNumber)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s on line %d", apperrors.ErrInactiveAccount, acc.Code, line.LineNumber)
		}
	}
	return nil
}

// uniqueAccountIDs returns the distinct account ids of the lines in ascending
// order, which is also the order row locks are taken in.
func uniqueAccountIDs(lines []domain.JournalEntryLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}
	sort.Strings(ids)
	return ids
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PostJournalEntry moves a draft entry to posted and writes its ledger rows.
func (s *journalService) PostJournalEntry(ctx context.Context, journalEntryID string, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		var err error
		entry, err = s.PostJournalEntryTx(ctx, tx, journalEntryID, userID)
		return err
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to post journal entry", slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}

	metrics.JournalEntriesPosted.Inc()
	metrics.LedgerRowsAppended.Add(float64(len(entry.Lines)))
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("ledger_rows", len(entry.Lines)))
	return entry, nil
}

// PostJournalEntryTx posts an entry inside the caller's transaction. The entry
// row is locked before its status is checked, and the affected accounts are
// locked in id order before their latest ledger rows are read, so concurrent
// postings to the same account serialize.
func (s *journalService) PostJournalEntryTx(ctx context.Context, tx portsrepo.TxStore, journalEntryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := tx.FindJournalEntryForUpdate(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	switch entry.Status {
	case domain.Draft:
	case domain.Posted:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAlreadyPosted, entry.EntryNumber)
	default:
		return nil, fmt.Errorf("%w: %s is %s", apperrors.ErrNotDraft, entry.EntryNumber, entry.Status)
	}

	accountIDs := uniqueAccountIDs(entry.Lines)
	if err := tx.LockAccountsForUpdate(ctx, accountIDs); err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	// Ledger rows stay in date order per account, so the highest sequence is
	// also the last row by (transaction date, sequence).
	entryDay := calendarDay(entry.EntryDate)
	for _, accountID := range accountIDs {
		latest, err := tx.LatestLedgerRow(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to read latest ledger row: %w", err)
		}
		if latest != nil && entryDay.Before(calendarDay(latest.TransactionDate)) {
			return nil, fmt.Errorf("%w: %s dated %s, account %s has a row on %s", apperrors.ErrBackdated,
				entry.EntryNumber, entryDay.Format(time.DateOnly), accountID, latest.TransactionDate.UTC().Format(time.DateOnly))
		}
	}

	now := s.Now()
	if err := tx.UpdateJournalEntryStatus(ctx, entry.JournalEntryID, domain.Posted, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update journal entry status: %w", err)
	}

	lines := append([]domain.JournalEntryLine(nil), entry.Lines...)
	sort.Slice(lines, func(i, j int) bool { return lines[i].LineNumber < lines[j].LineNumber })

	for _, line := range lines {
		var previous int64
		latest, err := tx.LatestLedgerRow(ctx, line.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to read latest ledger row: %w", err)
		}
		if latest != nil {
			previous = latest.RunningBalance
		}

		balance, err := accounting.NextRunningBalance(previous, line.DebitAmount, line.CreditAmount)
		if err != nil {
			return nil, err
		}

		description := line.Description
		if description == "" {
			description = entry.Description
		}
		row := &domain.GeneralLedgerRow{
			GeneralLedgerRowID: uuid.NewString(),
			AccountID:          line.AccountID,
			JournalEntryID:     entry.JournalEntryID,
			JournalEntryLineID: line.JournalEntryLineID,
			LegalEntityID:      entry.LegalEntityID,
			TransactionDate:    entry.EntryDate,
			DebitAmount:        line.DebitAmount,
			CreditAmount:       line.CreditAmount,
			RunningBalance:     balance,
			Description:        description,
			CreatedAt:          now,
		}
		if err := tx.AppendLedgerRow(ctx, row); err != nil {
			return nil, fmt.Errorf("failed to append ledger row: %w", err)
		}
	}

	postedBy := userID
	entry.Status = domain.Posted
	entry.PostedAt = &now
	entry.PostedBy = &postedBy
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	return entry, nil
}

// CancelJournalEntry moves a draft entry to cancelled. Posted entries stay posted.
func (s *journalService) CancelJournalEntry(ctx context.Context, journalEntryID string, userID string) error {
	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		entry, err := tx.FindJournalEntryForUpdate(ctx, journalEntryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("%w: %s is %s", apperrors.ErrNotDraft, entry.EntryNumber, entry.Status)
		}
		return tx.UpdateJournalEntryStatus(ctx, journalEntryID, domain.Cancelled, userID, s.Now())
	})
	if err != nil {
		s.logWriteError(ctx, err, "Failed to cancel journal entry", slog.String("journal_entry_id", journalEntryID))
		return err
	}

	metrics.JournalEntriesCancelled.Inc()
	s.LogInfo(ctx, "Journal entry cancelled", slog.String("journal_entry_id", journalEntryID))
	return nil
}

func (s *journalService) GetJournalEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		entry, err = tx.FindJournalEntryByID(ctx, journalEntryID)
		return err
	})
	return entry, err
}

// ListJournalEntries returns one page of entries ordered by (entry date, entry number).
func (s *journalService) ListJournalEntries(ctx context.Context, legalEntityID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	if err := dto.Validate(params); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit == 0 {
		limit = defaultJournalPageSize
	}

	var after *portsrepo.JournalCursor
	if params.NextToken != nil && *params.NextToken != "" {
		entryDate, entryNumber, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		after = &portsrepo.JournalCursor{EntryDate: entryDate, EntryNumber: entryNumber}
	}

	var entries []domain.JournalEntry
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		// One extra row tells whether another page exists.
		entries, err = tx.ListJournalEntries(ctx, legalEntityID, limit+1, after)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("legal_entity_id", legalEntityID))
		return nil, err
	}

	resp := &dto.ListJournalEntriesResponse{Entries: entries}
	if len(entries) > limit {
		resp.Entries = entries[:limit]
		last := resp.Entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryNumber)
		resp.NextToken = &token
	}
	if resp.Entries == nil {
		resp.Entries = []domain.JournalEntry{}
	}
	return resp, nil
}
