package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

const ledgerColumns = `general_ledger_id, seq, account_id, journal_entry_id, journal_entry_line_id, legal_entity_id,
	transaction_date, debit_amount, credit_amount, running_balance, description, created_at`

func scanLedgerRow(row rowScanner) (domain.GeneralLedgerRow, error) {
	var g domain.GeneralLedgerRow
	err := row.Scan(
		&g.GeneralLedgerRowID, &g.Sequence, &g.AccountID, &g.JournalEntryID, &g.JournalEntryLineID, &g.LegalEntityID,
		&g.TransactionDate, &g.DebitAmount, &g.CreditAmount, &g.RunningBalance, &g.Description, &g.CreatedAt,
	)
	return g, err
}

func (r *pgxTxRepository) ListLedgerRowsByAccount(ctx context.Context, accountID string) ([]domain.GeneralLedgerRow, error) {
	query := `SELECT ` + ledgerColumns + ` FROM general_ledger WHERE account_id = $1 ORDER BY transaction_date, seq`
	rows, err := r.tx.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query ledger rows: %w", apperrors.ErrInternal, err)
	}
	defer rows.Close()

	out := make([]domain.GeneralLedgerRow, 0)
	for rows.Next() {
		g, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan ledger row: %w", apperrors.ErrInternal, err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating ledger rows: %w", apperrors.ErrInternal, err)
	}
	return out, nil
}

func (r *pgxTxRepository) LatestLedgerRow(ctx context.Context, accountID string) (*domain.GeneralLedgerRow, error) {
	query := `SELECT ` + ledgerColumns + ` FROM general_ledger WHERE account_id = $1 ORDER BY seq DESC LIMIT 1`
	g, err := scanLedgerRow(r.tx.QueryRow(ctx, query, accountID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query latest ledger row: %w", apperrors.ErrInternal, err)
	}
	return &g, nil
}

func (r *pgxTxRepository) SumLedgerByAccount(ctx context.Context, legalEntityID string) ([]domain.LedgerTotals, error) {
	query := `
		SELECT account_id, COALESCE(SUM(debit_amount), 0)::BIGINT, COALESCE(SUM(credit_amount), 0)::BIGINT
		FROM general_ledger
		WHERE legal_entity_id = $1
		GROUP BY account_id
		ORDER BY account_id;
	`
	rows, err := r.tx.Query(ctx, query, legalEntityID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to aggregate ledger: %w", apperrors.ErrInternal, err)
	}
	defer rows.Close()

	out := make([]domain.LedgerTotals, 0)
	for rows.Next() {
		var t domain.LedgerTotals
		if err := rows.Scan(&t.AccountID, &t.TotalDebit, &t.TotalCredit); err != nil {
			return nil, fmt.Errorf("%w: failed to scan ledger totals: %w", apperrors.ErrInternal, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating ledger totals: %w", apperrors.ErrInternal, err)
	}
	return out, nil
}

// AppendLedgerRow inserts the row and reads back the sequence the database assigned.
func (r *pgxTxRepository) AppendLedgerRow(ctx context.Context, row *domain.GeneralLedgerRow) error {
	query := `
		INSERT INTO general_ledger (general_ledger_id, account_id, journal_entry_id, journal_entry_line_id, legal_entity_id,
			transaction_date, debit_amount, credit_amount, running_balance, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq;
	`
	err := r.tx.QueryRow(ctx, query,
		row.GeneralLedgerRowID, row.AccountID, row.JournalEntryID, row.JournalEntryLineID, row.LegalEntityID,
		row.TransactionDate, row.DebitAmount, row.CreditAmount, row.RunningBalance, row.Description, row.CreatedAt,
	).Scan(&row.Sequence)
	if err != nil {
		return writeError(err, "ledger row for line "+row.JournalEntryLineID)
	}
	return nil
}
