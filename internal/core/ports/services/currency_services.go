package services

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

// CurrencySvcFacade defines the currency registry operations
type CurrencySvcFacade interface {
	// CreateCurrency registers a currency. Only one base currency may exist.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrency retrieves a currency by ID.
	GetCurrency(ctx context.Context, currencyID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// GetBaseCurrency retrieves the base currency.
	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
