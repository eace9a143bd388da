package repositories

import (
	"context"
	"time"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within a legal entity.
	FindAccountByCode(ctx context.Context, legalEntityID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts of a legal entity ordered by code.
	ListAccounts(ctx context.Context, legalEntityID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A taken (legal entity, code) pair yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// LockAccountsForUpdate serializes writers that touch the same accounts
	// until the surrounding transaction ends.
	LockAccountsForUpdate(ctx context.Context, accountIDs []string) error
}
