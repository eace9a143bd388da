package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

func (r *txReader) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	acc, ok := r.st.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &acc, nil
}

func (r *txReader) FindAccountByCode(_ context.Context, legalEntityID, code string) (*domain.Account, error) {
	for _, acc := range r.st.accounts {
		if acc.LegalEntityID == legalEntityID && acc.Code == code {
			return &acc, nil
		}
	}
	return nil, fmt.Errorf("%w: account with code %s", apperrors.ErrNotFound, code)
}

func (r *txReader) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := r.st.accounts[id]; ok {
			out[id] = acc
		}
	}
	return out, nil
}

func (r *txReader) ListAccounts(_ context.Context, legalEntityID string) ([]domain.Account, error) {
	out := make([]domain.Account, 0)
	for _, acc := range r.st.accounts {
		if acc.LegalEntityID == legalEntityID {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (w *txStore) SaveAccount(_ context.Context, account domain.Account) error {
	if _, ok := w.st.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, acc := range w.st.accounts {
		if acc.LegalEntityID == account.LegalEntityID && acc.Code == account.Code {
			return fmt.Errorf("%w: account with code %s", apperrors.ErrDuplicate, account.Code)
		}
	}
	if account.ParentID != nil {
		parent, ok := w.st.accounts[*account.ParentID]
		if !ok || parent.LegalEntityID != account.LegalEntityID {
			return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, *account.ParentID)
		}
	}
	w.st.accounts[account.AccountID] = account
	return nil
}

func (w *txStore) DeactivateAccount(_ context.Context, accountID string, userID string, now time.Time) error {
	acc, ok := w.st.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	acc.IsActive = false
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = userID
	w.st.accounts[accountID] = acc
	return nil
}

// LockAccountsForUpdate is a no-op: write transactions are already serialized.
func (w *txStore) LockAccountsForUpdate(_ context.Context, _ []string) error {
	return nil
}
