package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
)

func (r *txReader) FindJournalEntryByID(_ context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, ok := r.st.entries[journalEntryID]
	if !ok {
		return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, journalEntryID)
	}
	entry.Lines = slices.Clone(entry.Lines)
	return &entry, nil
}

func (r *txReader) ListJournalEntries(_ context.Context, legalEntityID string, limit int, after *portsrepo.JournalCursor) ([]domain.JournalEntry, error) {
	out := make([]domain.JournalEntry, 0)
	for _, entry := range r.st.entries {
		if entry.LegalEntityID != legalEntityID {
			continue
		}
		if after != nil && !entryAfter(entry, *after) {
			continue
		}
		entry.Lines = nil
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].EntryNumber < out[j].EntryNumber
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func entryAfter(entry domain.JournalEntry, cursor portsrepo.JournalCursor) bool {
	if entry.EntryDate.Equal(cursor.EntryDate) {
		return entry.EntryNumber > cursor.EntryNumber
	}
	return entry.EntryDate.After(cursor.EntryDate)
}

func (w *txStore) NextEntryNumber(_ context.Context) (string, error) {
	w.st.entrySeq++
	return fmt.Sprintf("JE-%08d", w.st.entrySeq), nil
}

func (w *txStore) SaveJournalEntry(_ context.Context, entry domain.JournalEntry) error {
	if _, ok := w.st.entries[entry.JournalEntryID]; ok {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, entry.JournalEntryID)
	}
	for _, existing := range w.st.entries {
		if existing.EntryNumber == entry.EntryNumber {
			return fmt.Errorf("%w: entry number %s", apperrors.ErrDuplicate, entry.EntryNumber)
		}
	}
	entry.Lines = slices.Clone(entry.Lines)
	w.st.entries[entry.JournalEntryID] = entry
	return nil
}

// FindJournalEntryForUpdate needs no lock: write transactions are already serialized.
func (w *txStore) FindJournalEntryForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	return w.FindJournalEntryByID(ctx, journalEntryID)
}

func (w *txStore) UpdateJournalEntryStatus(_ context.Context, journalEntryID string, status domain.JournalStatus, userID string, now time.Time) error {
	entry, ok := w.st.entries[journalEntryID]
	if !ok {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, journalEntryID)
	}
	entry.Status = status
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	if status == domain.Posted {
		postedAt, postedBy := now, userID
		entry.PostedAt = &postedAt
		entry.PostedBy = &postedBy
	}
	w.st.entries[journalEntryID] = entry
	return nil
}
