package pgsql

import (
	"context"
	"fmt"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

const currencyColumns = `currency_id, code, name, decimals, is_base_currency, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCurrency(row rowScanner) (domain.Currency, error) {
	var c domain.Currency
	err := row.Scan(
		&c.CurrencyID, &c.Code, &c.Name, &c.Decimals, &c.IsBaseCurrency, &c.IsActive,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	return c, err
}

func (r *pgxTxRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_id = $1`
	c, err := scanCurrency(r.tx.QueryRow(ctx, query, currencyID))
	if err != nil {
		return nil, notFound(err, "currency "+currencyID)
	}
	return &c, nil
}

func (r *pgxTxRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE code = $1`
	c, err := scanCurrency(r.tx.QueryRow(ctx, query, code))
	if err != nil {
		return nil, notFound(err, "currency "+code)
	}
	return &c, nil
}

func (r *pgxTxRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_base_currency`
	c, err := scanCurrency(r.tx.QueryRow(ctx, query))
	if err != nil {
		return nil, notFound(err, "base currency")
	}
	return &c, nil
}

func (r *pgxTxRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY code`
	rows, err := r.tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list currencies: %w", apperrors.ErrInternal, err)
	}
	defer rows.Close()

	currencies := make([]domain.Currency, 0)
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan currency row: %w", apperrors.ErrInternal, err)
		}
		currencies = append(currencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating currency rows: %w", apperrors.ErrInternal, err)
	}
	return currencies, nil
}

func (r *pgxTxRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.tx.Exec(ctx, query,
		currency.CurrencyID, currency.Code, currency.Name, currency.Decimals, currency.IsBaseCurrency, currency.IsActive,
		currency.CreatedAt, currency.CreatedBy, currency.LastUpdatedAt, currency.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "currency "+currency.Code)
	}
	return nil
}
