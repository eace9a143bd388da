package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
)

// PostgreSQL error codes the repositories translate.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// Constraints that map to a specific business error.
const (
	baseCurrencyIndex   = "currencies_single_base_idx"
	dealPaidWithinTotal = "deals_paid_within_total"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction with the given options.
func (r *BaseRepository) Begin(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrInternal, err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrInternal, err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("%w: failed to rollback transaction: %w", apperrors.ErrInternal, err)
	}
	return nil
}

// notFound maps pgx.ErrNoRows to apperrors.ErrNotFound and anything else to ErrInternal.
func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return fmt.Errorf("%w: failed to query %s: %w", apperrors.ErrInternal, what, err)
}

// writeError maps constraint violations to the business error categories.
func writeError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			if pgErr.ConstraintName == baseCurrencyIndex {
				return fmt.Errorf("%w: %s", apperrors.ErrBaseCurrency, what)
			}
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s references a missing row (%s)", apperrors.ErrNotFound, what, pgErr.ConstraintName)
		case checkViolation:
			if pgErr.ConstraintName == dealPaidWithinTotal {
				return fmt.Errorf("%w: %s", apperrors.ErrOverpayment, what)
			}
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrValidation, what, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%w: failed to write %s: %w", apperrors.ErrInternal, what, err)
}
