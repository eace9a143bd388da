package pgsql

import (
	"context"
	"fmt"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

const dealColumns = `deal_id, legal_entity_id, role, receiver_bin, reference, title, currency_id,
	total_amount, paid_amount, status, created_at, created_by, last_updated_at, last_updated_by`

func scanDeal(row rowScanner) (domain.Deal, error) {
	var d domain.Deal
	err := row.Scan(
		&d.DealID, &d.LegalEntityID, &d.Role, &d.ReceiverBIN, &d.Reference, &d.Title, &d.CurrencyID,
		&d.TotalAmount, &d.PaidAmount, &d.Status, &d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
	)
	return d, err
}

func (r *pgxTxRepository) FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE deal_id = $1`
	d, err := scanDeal(r.tx.QueryRow(ctx, query, dealID))
	if err != nil {
		return nil, notFound(err, "deal "+dealID)
	}
	return &d, nil
}

func (r *pgxTxRepository) FindDealForUpdate(ctx context.Context, dealID string) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE deal_id = $1 FOR UPDATE`
	d, err := scanDeal(r.tx.QueryRow(ctx, query, dealID))
	if err != nil {
		return nil, notFound(err, "deal "+dealID)
	}
	return &d, nil
}

func (r *pgxTxRepository) ListDealsByCounterparty(ctx context.Context, legalEntityID, receiverBIN, reference string) ([]domain.Deal, error) {
	query := `
		SELECT ` + dealColumns + `
		FROM deals
		WHERE legal_entity_id = $1 AND receiver_bin = $2 AND reference = $3
		ORDER BY created_at, deal_id;
	`
	rows, err := r.tx.Query(ctx, query, legalEntityID, receiverBIN, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list counter-party deals: %w", apperrors.ErrInternal, err)
	}
	defer rows.Close()

	deals := make([]domain.Deal, 0)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan deal: %w", apperrors.ErrInternal, err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating deals: %w", apperrors.ErrInternal, err)
	}
	return deals, nil
}

func (r *pgxTxRepository) ListDealLinks(ctx context.Context, dealID string) ([]domain.DealJournalEntryLink, error) {
	query := `
		SELECT deal_id, journal_entry_id, entry_type, created_at
		FROM deal_journal_entry_links
		WHERE deal_id = $1
		ORDER BY seq;
	`
	rows, err := r.tx.Query(ctx, query, dealID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list deal links: %w", apperrors.ErrInternal, err)
	}
	defer rows.Close()

	links := make([]domain.DealJournalEntryLink, 0)
	for rows.Next() {
		var l domain.DealJournalEntryLink
		if err := rows.Scan(&l.DealID, &l.JournalEntryID, &l.EntryType, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan deal link: %w", apperrors.ErrInternal, err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating deal links: %w", apperrors.ErrInternal, err)
	}
	return links, nil
}

func (r *pgxTxRepository) SaveDeal(ctx context.Context, deal domain.Deal) error {
	query := `
		INSERT INTO deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.tx.Exec(ctx, query,
		deal.DealID, deal.LegalEntityID, deal.Role, deal.ReceiverBIN, deal.Reference, deal.Title, deal.CurrencyID,
		deal.TotalAmount, deal.PaidAmount, deal.Status, deal.CreatedAt, deal.CreatedBy, deal.LastUpdatedAt, deal.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "deal "+deal.DealID)
	}
	return nil
}

func (r *pgxTxRepository) UpdateDealPayment(ctx context.Context, deal domain.Deal) error {
	query := `
		UPDATE deals
		SET paid_amount = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE deal_id = $1;
	`
	tag, err := r.tx.Exec(ctx, query, deal.DealID, deal.PaidAmount, deal.Status, deal.LastUpdatedAt, deal.LastUpdatedBy)
	if err != nil {
		return writeError(err, "deal "+deal.DealID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: deal %s", apperrors.ErrNotFound, deal.DealID)
	}
	return nil
}

func (r *pgxTxRepository) SaveDealLink(ctx context.Context, link domain.DealJournalEntryLink) error {
	query := `
		INSERT INTO deal_journal_entry_links (deal_id, journal_entry_id, entry_type, created_at)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := r.tx.Exec(ctx, query, link.DealID, link.JournalEntryID, link.EntryType, link.CreatedAt); err != nil {
		return writeError(err, fmt.Sprintf("link %s/%s", link.DealID, link.JournalEntryID))
	}
	return nil
}
