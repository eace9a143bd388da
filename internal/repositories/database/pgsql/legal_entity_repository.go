package pgsql

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

const legalEntityColumns = `legal_entity_id, bin, name, created_at, created_by, last_updated_at, last_updated_by`

func (r *pgxTxRepository) findLegalEntity(ctx context.Context, where string, arg any, what string) (*domain.LegalEntity, error) {
	query := `SELECT ` + legalEntityColumns + ` FROM legal_entities WHERE ` + where
	var e domain.LegalEntity
	err := r.tx.QueryRow(ctx, query, arg).Scan(
		&e.LegalEntityID, &e.BIN, &e.Name,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		return nil, notFound(err, what)
	}
	return &e, nil
}

func (r *pgxTxRepository) FindLegalEntityByID(ctx context.Context, legalEntityID string) (*domain.LegalEntity, error) {
	return r.findLegalEntity(ctx, `legal_entity_id = $1`, legalEntityID, "legal entity "+legalEntityID)
}

func (r *pgxTxRepository) FindLegalEntityByBIN(ctx context.Context, bin string) (*domain.LegalEntity, error) {
	return r.findLegalEntity(ctx, `bin = $1`, bin, "legal entity with BIN "+bin)
}

func (r *pgxTxRepository) SaveLegalEntity(ctx context.Context, entity domain.LegalEntity) error {
	query := `
		INSERT INTO legal_entities (` + legalEntityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.tx.Exec(ctx, query,
		entity.LegalEntityID, entity.BIN, entity.Name,
		entity.CreatedAt, entity.CreatedBy, entity.LastUpdatedAt, entity.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "legal entity "+entity.BIN)
	}
	return nil
}
