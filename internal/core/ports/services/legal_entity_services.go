package services

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

// LegalEntitySvc manages the tenants of the engine.
type LegalEntitySvc interface {
	// CreateLegalEntity onboards a legal entity identified by its BIN.
	CreateLegalEntity(ctx context.Context, req dto.CreateLegalEntityRequest, creatorUserID string) (*domain.LegalEntity, error)

	// GetLegalEntity retrieves a legal entity by ID.
	GetLegalEntity(ctx context.Context, legalEntityID string) (*domain.LegalEntity, error)

	// FindLegalEntityByBIN retrieves a legal entity by BIN.
	FindLegalEntityByBIN(ctx context.Context, bin string) (*domain.LegalEntity, error)
}
