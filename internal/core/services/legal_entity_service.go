package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

type legalEntityService struct {
	BaseService
	txm portsrepo.TransactionManager
}

// NewLegalEntityService creates a new legal entity service.
func NewLegalEntityService(txm portsrepo.TransactionManager, options ...ServiceOption) portssvc.LegalEntitySvc {
	return &legalEntityService{BaseService: newBaseService(options), txm: txm}
}

var _ portssvc.LegalEntitySvc = (*legalEntityService)(nil)

func (s *legalEntityService) CreateLegalEntity(ctx context.Context, req dto.CreateLegalEntityRequest, creatorUserID string) (*domain.LegalEntity, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	entity := domain.LegalEntity{
		LegalEntityID: uuid.NewString(),
		BIN:           req.BIN,
		Name:          req.Name,
		AuditFields:   domain.NewAuditFields(creatorUserID, s.Now()),
	}

	err := s.txm.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		return tx.SaveLegalEntity(ctx, entity)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save legal entity", slog.String("bin", req.BIN))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Legal entity created", slog.String("legal_entity_id", entity.LegalEntityID), slog.String("bin", entity.BIN))
	return &entity, nil
}

func (s *legalEntityService) GetLegalEntity(ctx context.Context, legalEntityID string) (*domain.LegalEntity, error) {
	var entity *domain.LegalEntity
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		entity, err = tx.FindLegalEntityByID(ctx, legalEntityID)
		return err
	})
	return entity, err
}

func (s *legalEntityService) FindLegalEntityByBIN(ctx context.Context, bin string) (*domain.LegalEntity, error) {
	var entity *domain.LegalEntity
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		entity, err = tx.FindLegalEntityByBIN(ctx, bin)
		return err
	})
	return entity, err
}
