package memory

import (
	"context"
	"fmt"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

func (r *txReader) FindLegalEntityByID(_ context.Context, legalEntityID string) (*domain.LegalEntity, error) {
	le, ok := r.st.legalEntities[legalEntityID]
	if !ok {
		return nil, fmt.Errorf("%w: legal entity %s", apperrors.ErrNotFound, legalEntityID)
	}
	return &le, nil
}

func (r *txReader) FindLegalEntityByBIN(_ context.Context, bin string) (*domain.LegalEntity, error) {
	for _, le := range r.st.legalEntities {
		if le.BIN == bin {
			return &le, nil
		}
	}
	return nil, fmt.Errorf("%w: legal entity with BIN %s", apperrors.ErrNotFound, bin)
}

func (w *txStore) SaveLegalEntity(_ context.Context, entity domain.LegalEntity) error {
	if _, ok := w.st.legalEntities[entity.LegalEntityID]; ok {
		return fmt.Errorf("%w: legal entity %s", apperrors.ErrDuplicate, entity.LegalEntityID)
	}
	for _, le := range w.st.legalEntities {
		if le.BIN == entity.BIN {
			return fmt.Errorf("%w: legal entity with BIN %s", apperrors.ErrDuplicate, entity.BIN)
		}
	}
	w.st.legalEntities[entity.LegalEntityID] = entity
	return nil
}
