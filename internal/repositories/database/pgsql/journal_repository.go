package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
)

const journalEntryColumns = `journal_entry_id, entry_number, legal_entity_id, entry_date, description, reference, status,
	currency_id, total_debit, total_credit, posted_at, posted_by,
	created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row rowScanner) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.JournalEntryID, &e.EntryNumber, &e.LegalEntityID, &e.EntryDate, &e.Description, &e.Reference, &e.Status,
		&e.CurrencyID, &e.TotalDebit, &e.TotalCredit, &e.PostedAt, &e.PostedBy,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	return e, err
}

func (r *pgxTxRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	return r.findJournalEntry(ctx, journalEntryID, false)
}

// FindJournalEntryForUpdate locks the header row; lines are never modified
// after insert so they need no lock.
func (r *pgxTxRepository) FindJournalEntryForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	return r.findJournalEntry(ctx, journalEntryID, true)
}

func (r *pgxTxRepository) findJournalEntry(ctx context.Context, journalEntryID string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	entry, err := scanJournalEntry(r.tx.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		return nil, notFound(err, "journal entry "+journalEntryID)
	}

	lines, err := r.findJournalLines(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func (r *pgxTxRepository) findJournalLines(ctx context.Context, journalEntryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT journal_entry_line_id, journal_entry_id, account_id, debit_amount, credit_amount, line_number, description
		FROM journal_entry_lines
		WHERE journal_entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.tx.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query journal lines: %w", apperrors.ErrInternal, err)
	}
	defer rows.Close()

	lines := make([]domain.JournalEntryLine, 0)
	for rows.Next() {
		var l domain.JournalEntryLine
		if err := rows.Scan(&l.JournalEntryLineID, &l.JournalEntryID, &l.AccountID,
			&l.DebitAmount, &l.CreditAmount, &l.LineNumber, &l.Description); err != nil {
			return nil, fmt.Errorf("%w: failed to scan journal line: %w", apperrors.ErrInternal, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating journal lines: %w", apperrors.ErrInternal, err)
	}
	return lines, nil
}

func (r *pgxTxRepository) ListJournalEntries(ctx context.Context, legalEntityID string, limit int, after *portsrepo.JournalCursor) ([]domain.JournalEntry, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		query := `SELECT ` + journalEntryColumns + `
			FROM journal_entries
			WHERE legal_entity_id = $1
			ORDER BY entry_date, entry_number
			LIMIT $2`
		rows, err = r.tx.Query(ctx, query, legalEntityID, limit)
	} else {
		query := `SELECT ` + journalEntryColumns + `
			FROM journal_entries
			WHERE legal_entity_id = $1 AND (entry_date, entry_number) > ($2, $3)
			ORDER BY entry_date, entry_number
			LIMIT $4`
		rows, err = r.tx.Query(ctx, query, legalEntityID, after.EntryDate, after.EntryNumber, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list journal entries: %w", apperrors.ErrInternal, err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan journal entry: %w", apperrors.ErrInternal, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating journal entries: %w", apperrors.ErrInternal, err)
	}
	return entries, nil
}

func (r *pgxTxRepository) NextEntryNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.tx.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("%w: failed to reserve entry number: %w", apperrors.ErrInternal, err)
	}
	return fmt.Sprintf("JE-%08d", n), nil
}

// SaveJournalEntry inserts the header and then all lines in one batch.
func (r *pgxTxRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	headerQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.tx.Exec(ctx, headerQuery,
		entry.JournalEntryID, entry.EntryNumber, entry.LegalEntityID, entry.EntryDate, entry.Description, entry.Reference, entry.Status,
		entry.CurrencyID, entry.TotalDebit, entry.TotalCredit, entry.PostedAt, entry.PostedBy,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return writeError(err, "journal entry "+entry.EntryNumber)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (journal_entry_line_id, journal_entry_id, account_id, debit_amount, credit_amount, line_number, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range entry.Lines {
		batch.Queue(lineQuery, l.JournalEntryLineID, entry.JournalEntryID, l.AccountID,
			l.DebitAmount, l.CreditAmount, l.LineNumber, l.Description)
	}

	br := r.tx.SendBatch(ctx, batch)
	for _, l := range entry.Lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return writeError(err, fmt.Sprintf("journal line %d of %s", l.LineNumber, entry.EntryNumber))
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("%w: failed to close journal line batch: %w", apperrors.ErrInternal, err)
	}
	return nil
}

func (r *pgxTxRepository) UpdateJournalEntryStatus(ctx context.Context, journalEntryID string, status domain.JournalStatus, userID string, now time.Time) error {
	var postedAt *time.Time
	var postedBy *string
	if status == domain.Posted {
		postedAt = &now
		postedBy = &userID
	}

	query := `
		UPDATE journal_entries
		SET status = $2, posted_at = COALESCE($3, posted_at), posted_by = COALESCE($4, posted_by),
			last_updated_at = $5, last_updated_by = $6
		WHERE journal_entry_id = $1;
	`
	tag, err := r.tx.Exec(ctx, query, journalEntryID, status, postedAt, postedBy, now, userID)
	if err != nil {
		return writeError(err, "journal entry "+journalEntryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, journalEntryID)
	}
	return nil
}
