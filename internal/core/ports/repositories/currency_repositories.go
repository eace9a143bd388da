package repositories

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a currency by its ID.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// FindBaseCurrency retrieves the single base currency.
	FindBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}
