package memory

import (
	"context"
	"sort"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

func (r *txReader) ListLedgerRowsByAccount(_ context.Context, accountID string) ([]domain.GeneralLedgerRow, error) {
	idx := r.st.ledgerByAccount[accountID]
	out := make([]domain.GeneralLedgerRow, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.st.ledger[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.Before(out[j].TransactionDate)
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out, nil
}

func (r *txReader) LatestLedgerRow(_ context.Context, accountID string) (*domain.GeneralLedgerRow, error) {
	idx := r.st.ledgerByAccount[accountID]
	if len(idx) == 0 {
		return nil, nil
	}
	row := r.st.ledger[idx[len(idx)-1]]
	return &row, nil
}

func (r *txReader) SumLedgerByAccount(_ context.Context, legalEntityID string) ([]domain.LedgerTotals, error) {
	totals := make(map[string]*domain.LedgerTotals)
	for _, row := range r.st.ledger {
		if row.LegalEntityID != legalEntityID {
			continue
		}
		t, ok := totals[row.AccountID]
		if !ok {
			t = &domain.LedgerTotals{AccountID: row.AccountID}
			totals[row.AccountID] = t
		}
		t.TotalDebit += row.DebitAmount
		t.TotalCredit += row.CreditAmount
	}

	out := make([]domain.LedgerTotals, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (w *txStore) AppendLedgerRow(_ context.Context, row *domain.GeneralLedgerRow) error {
	w.st.ledgerSeq++
	row.Sequence = w.st.ledgerSeq
	w.st.ledger = append(w.st.ledger, *row)
	w.st.ledgerByAccount[row.AccountID] = append(w.st.ledgerByAccount[row.AccountID], len(w.st.ledger)-1)
	return nil
}
