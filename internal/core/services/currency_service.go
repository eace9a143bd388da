package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

type currencyService struct {
	BaseService
	txm portsrepo.TransactionManager
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(txm portsrepo.TransactionManager, options ...ServiceOption) portssvc.CurrencySvcFacade {
	return &currencyService{BaseService: newBaseService(options), txm: txm}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	currency := domain.Currency{
		CurrencyID:     uuid.NewString(),
		Code:           req.Code,
		Name:           req.Name,
		Decimals:       req.Decimals,
		IsBaseCurrency: req.IsBaseCurrency,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(creatorUserID, s.Now()),
	}

	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		if currency.IsBaseCurrency {
			base, err := tx.FindBaseCurrency(ctx)
			switch {
			case err == nil:
				return fmt.Errorf("%w: %s", apperrors.ErrBaseCurrency, base.Code)
			case !errors.Is(err, apperrors.ErrNotFound):
				return err
			}
		}
		return tx.SaveCurrency(ctx, currency)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create currency", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_id", currency.CurrencyID), slog.String("code", currency.Code))
	return &currency, nil
}

func (s *currencyService) GetCurrency(ctx context.Context, currencyID string) (*domain.Currency, error) {
	var currency *domain.Currency
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		currency, err = tx.FindCurrencyByID(ctx, currencyID)
		return err
	})
	return currency, err
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	var currency *domain.Currency
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		currency, err = tx.FindCurrencyByCode(ctx, code)
		return err
	})
	return currency, err
}

func (s *currencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	var currency *domain.Currency
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		currency, err = tx.FindBaseCurrency(ctx)
		return err
	})
	return currency, err
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	var currencies []domain.Currency
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		currencies, err = tx.ListCurrencies(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
