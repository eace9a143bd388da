package repositories

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// LegalEntityReader defines read operations for legal entities
type LegalEntityReader interface {
	// FindLegalEntityByID retrieves a legal entity by its ID.
	FindLegalEntityByID(ctx context.Context, legalEntityID string) (*domain.LegalEntity, error)

	// FindLegalEntityByBIN retrieves a legal entity by its business identification number.
	FindLegalEntityByBIN(ctx context.Context, bin string) (*domain.LegalEntity, error)
}

// LegalEntityWriter defines write operations for legal entities
type LegalEntityWriter interface {
	// SaveLegalEntity persists a new legal entity. A taken BIN yields apperrors.ErrDuplicate.
	SaveLegalEntity(ctx context.Context, entity domain.LegalEntity) error
}
