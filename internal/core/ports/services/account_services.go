package services

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account, checking it belongs to the legal entity.
	GetAccountByID(ctx context.Context, legalEntityID string, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its code.
	GetAccountByCode(ctx context.Context, legalEntityID string, code string) (*domain.Account, error)

	// ListAccounts retrieves all accounts of a legal entity.
	ListAccounts(ctx context.Context, legalEntityID string) ([]domain.Account, error)

	// AccountTree returns the chart of accounts as a hierarchy.
	AccountTree(ctx context.Context, legalEntityID string) ([]*domain.AccountNode, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, legalEntityID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, legalEntityID string, accountID string, userID string) error
}

// ChartSeederSvc inserts a chart-of-accounts dataset for a legal entity.
type ChartSeederSvc interface {
	// SeedChartOfAccounts creates the rows of the dataset, parents before children.
	SeedChartOfAccounts(ctx context.Context, legalEntityID string, req dto.SeedChartRequest) (*dto.SeedChartResult, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	ChartSeederSvc
}
