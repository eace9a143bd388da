package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

func (r *txReader) FindDealByID(_ context.Context, dealID string) (*domain.Deal, error) {
	deal, ok := r.st.deals[dealID]
	if !ok {
		return nil, fmt.Errorf("%w: deal %s", apperrors.ErrNotFound, dealID)
	}
	return &deal, nil
}

func (r *txReader) ListDealsByCounterparty(_ context.Context, legalEntityID, receiverBIN, reference string) ([]domain.Deal, error) {
	out := make([]domain.Deal, 0)
	for _, deal := range r.st.deals {
		if deal.LegalEntityID == legalEntityID && deal.ReceiverBIN == receiverBIN && deal.Reference == reference {
			out = append(out, deal)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].DealID < out[j].DealID
	})
	return out, nil
}

func (r *txReader) ListDealLinks(_ context.Context, dealID string) ([]domain.DealJournalEntryLink, error) {
	return slices.Clone(r.st.links[dealID]), nil
}

func (w *txStore) SaveDeal(_ context.Context, deal domain.Deal) error {
	if _, ok := w.st.deals[deal.DealID]; ok {
		return fmt.Errorf("%w: deal %s", apperrors.ErrDuplicate, deal.DealID)
	}
	w.st.deals[deal.DealID] = deal
	return nil
}

// FindDealForUpdate needs no lock: write transactions are already serialized.
func (w *txStore) FindDealForUpdate(ctx context.Context, dealID string) (*domain.Deal, error) {
	return w.FindDealByID(ctx, dealID)
}

func (w *txStore) UpdateDealPayment(_ context.Context, deal domain.Deal) error {
	existing, ok := w.st.deals[deal.DealID]
	if !ok {
		return fmt.Errorf("%w: deal %s", apperrors.ErrNotFound, deal.DealID)
	}
	existing.PaidAmount = deal.PaidAmount
	existing.Status = deal.Status
	existing.LastUpdatedAt = deal.LastUpdatedAt
	existing.LastUpdatedBy = deal.LastUpdatedBy
	w.st.deals[deal.DealID] = existing
	return nil
}

func (w *txStore) SaveDealLink(_ context.Context, link domain.DealJournalEntryLink) error {
	if _, ok := w.st.deals[link.DealID]; !ok {
		return fmt.Errorf("%w: deal %s", apperrors.ErrNotFound, link.DealID)
	}
	if _, ok := w.st.entries[link.JournalEntryID]; !ok {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, link.JournalEntryID)
	}
	for _, existing := range w.st.links[link.DealID] {
		if existing.JournalEntryID == link.JournalEntryID {
			return fmt.Errorf("%w: link %s/%s", apperrors.ErrDuplicate, link.DealID, link.JournalEntryID)
		}
	}
	w.st.links[link.DealID] = append(w.st.links[link.DealID], link)
	return nil
}
