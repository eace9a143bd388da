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

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	txm portsrepo.TransactionManager
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(txm portsrepo.TransactionManager, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{BaseService: newBaseService(options), txm: txm}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, legalEntityID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		LegalEntityID: legalEntityID,
		Code:          req.Code,
		Name:          req.Name,
		AccountType:   req.AccountType,
		ParentID:      req.ParentID,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(userID, s.Now()),
	}

	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		if _, err := tx.FindLegalEntityByID(ctx, legalEntityID); err != nil {
			return err
		}
		if account.ParentID != nil {
			if err := checkParent(ctx, tx, legalEntityID, *account.ParentID); err != nil {
				return err
			}
		}
		return tx.SaveAccount(ctx, account)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create account",
			slog.String("legal_entity_id", legalEntityID),
			slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func checkParent(ctx context.Context, tx portsrepo.TxReader, legalEntityID, parentID string) error {
	parent, err := tx.FindAccountByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("parent account: %w", err)
	}
	if parent.LegalEntityID != legalEntityID {
		return fmt.Errorf("%w: parent account %s", apperrors.ErrCrossEntity, parentID)
	}
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, legalEntityID string, accountID string) (*domain.Account, error) {
	var account *domain.Account
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		account, err = tx.FindAccountByID(ctx, accountID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.LegalEntityID != legalEntityID {
		// Accounts of other legal entities are reported as missing.
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, legalEntityID string, code string) (*domain.Account, error) {
	var account *domain.Account
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		account, err = tx.FindAccountByCode(ctx, legalEntityID, code)
		return err
	})
	return account, err
}

func (s *accountService) ListAccounts(ctx context.Context, legalEntityID string) ([]domain.Account, error) {
	var accounts []domain.Account
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		accounts, err = tx.ListAccounts(ctx, legalEntityID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("legal_entity_id", legalEntityID))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) AccountTree(ctx context.Context, legalEntityID string) ([]*domain.AccountNode, error) {
	accounts, err := s.ListAccounts(ctx, legalEntityID)
	if err != nil {
		return nil, err
	}
	return domain.BuildAccountTree(accounts), nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, legalEntityID string, accountID string, userID string) error {
	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		account, err := tx.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account.LegalEntityID != legalEntityID {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		if !account.IsActive {
			return nil
		}
		return tx.DeactivateAccount(ctx, accountID, userID, s.Now())
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
