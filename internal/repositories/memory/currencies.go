package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

func (r *txReader) FindCurrencyByID(_ context.Context, currencyID string) (*domain.Currency, error) {
	cur, ok := r.st.currencies[currencyID]
	if !ok {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, currencyID)
	}
	return &cur, nil
}

func (r *txReader) FindCurrencyByCode(_ context.Context, code string) (*domain.Currency, error) {
	for _, cur := range r.st.currencies {
		if cur.Code == code {
			return &cur, nil
		}
	}
	return nil, fmt.Errorf("%w: currency %s", apperrors.ErrNotFound, code)
}

func (r *txReader) FindBaseCurrency(_ context.Context) (*domain.Currency, error) {
	for _, cur := range r.st.currencies {
		if cur.IsBaseCurrency {
			return &cur, nil
		}
	}
	return nil, fmt.Errorf("%w: base currency", apperrors.ErrNotFound)
}

func (r *txReader) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	out := make([]domain.Currency, 0, len(r.st.currencies))
	for _, cur := range r.st.currencies {
		out = append(out, cur)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (w *txStore) SaveCurrency(_ context.Context, currency domain.Currency) error {
	for _, cur := range w.st.currencies {
		if cur.CurrencyID == currency.CurrencyID || cur.Code == currency.Code {
			return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, currency.Code)
		}
		if cur.IsBaseCurrency && currency.IsBaseCurrency {
			return fmt.Errorf("%w: %s", apperrors.ErrBaseCurrency, cur.Code)
		}
	}
	w.st.currencies[currency.CurrencyID] = currency
	return nil
}
