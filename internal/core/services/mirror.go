package services

import (
	"context"
	"errors"
	"slices"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
)

// mirrorMatch identifies the counter-party entry that already books an event.
type mirrorMatch struct {
	DealID         string
	JournalEntryID string
}

// findMirrorEntry looks for an entry the counter-party already booked for the
// same economic event. The key is (counter-party BIN, deal reference, entry
// type, amount): the counter-party is resolved from the deal's receiver BIN,
// its deals naming our BIN under the same reference are scanned, and a linked
// non-cancelled entry of one of the given types with the same total matches.
//
// The match is advisory. Two independent legal entities share no deal-pair
// identifier, so unrelated deals reusing a reference and amount also match.
// A matched entry is not consumed: every later booking with the same key
// matches it again. A cash-basis payment relies on this to match the invoice
// that already suppressed the mirrored deal's own invoice.
func findMirrorEntry(ctx context.Context, tx portsrepo.TxReader, deal domain.Deal, ownBIN string, types []domain.EntryType, amount int64) (*mirrorMatch, error) {
	if deal.Reference == "" {
		return nil, nil
	}

	counterparty, err := tx.FindLegalEntityByBIN(ctx, deal.ReceiverBIN)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	deals, err := tx.ListDealsByCounterparty(ctx, counterparty.LegalEntityID, ownBIN, deal.Reference)
	if err != nil {
		return nil, err
	}

	for _, other := range deals {
		links, err := tx.ListDealLinks(ctx, other.DealID)
		if err != nil {
			return nil, err
		}
		for _, link := range links {
			if !slices.Contains(types, link.EntryType) {
				continue
			}
			entry, err := tx.FindJournalEntryByID(ctx, link.JournalEntryID)
			if err != nil {
				return nil, err
			}
			if entry.Status != domain.Cancelled && entry.TotalDebit == amount {
				return &mirrorMatch{DealID: other.DealID, JournalEntryID: entry.JournalEntryID}, nil
			}
		}
	}
	return nil, nil
}
