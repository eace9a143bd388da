package pgsql

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

const accountColumns = `account_id, legal_entity_id, code, name, account_type, parent_account_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID, &a.LegalEntityID, &a.Code, &a.Name, &a.AccountType, &a.ParentID, &a.IsActive,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	return a, err
}

func (r *pgxTxRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	acc, err := scanAccount(r.tx.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, notFound(err, "account "+accountID)
	}
	return &acc, nil
}

func (r *pgxTxRepository) FindAccountByCode(ctx context.Context, legalEntityID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE legal_entity_id = $1 AND code = $2`
	acc, err := scanAccount(r.tx.QueryRow(ctx, query, legalEntityID, code))
	if err != nil {
		return nil, notFound(err, "account with code "+code)
	}
	return &acc, nil
}

func (r *pgxTxRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return accounts, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1)`
	rows, err := r.tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query accounts by IDs: %w", apperrors.ErrInternal, err)
	}
	defer rows.Close()

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan account row: %w", apperrors.ErrInternal, err)
		}
		accounts[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating account rows: %w", apperrors.ErrInternal, err)
	}
	return accounts, nil
}

func (r *pgxTxRepository) ListAccounts(ctx context.Context, legalEntityID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE legal_entity_id = $1 ORDER BY code`
	rows, err := r.tx.Query(ctx, query, legalEntityID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list accounts: %w", apperrors.ErrInternal, err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan account row: %w", apperrors.ErrInternal, err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating account rows: %w", apperrors.ErrInternal, err)
	}
	return accounts, nil
}

func (r *pgxTxRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.tx.Exec(ctx, query,
		account.AccountID, account.LegalEntityID, account.Code, account.Name, account.AccountType,
		account.ParentID, account.IsActive,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "account "+account.Code)
	}
	return nil
}

func (r *pgxTxRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.tx.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return writeError(err, "account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// LockAccountsForUpdate takes the row locks in id order so concurrent posters
// touching overlapping accounts cannot deadlock.
func (r *pgxTxRepository) LockAccountsForUpdate(ctx context.Context, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}
	ids := slices.Clone(accountIDs)
	slices.Sort(ids)

	query := `SELECT account_id FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE`
	rows, err := r.tx.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("%w: failed to lock accounts: %w", apperrors.ErrInternal, err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		locked++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: failed to lock accounts: %w", apperrors.ErrInternal, err)
	}
	if locked != len(slices.Compact(ids)) {
		return fmt.Errorf("%w: one or more accounts to lock do not exist", apperrors.ErrNotFound)
	}
	return nil
}
