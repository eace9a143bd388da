package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func seedEntity(t *testing.T, s *Store) {
	t.Helper()
	err := s.WithTx(context.Background(), func(ctx context.Context, tx portsrepo.TxStore) error {
		if err := tx.SaveLegalEntity(ctx, domain.LegalEntity{LegalEntityID: "le-1", BIN: "123456789012", Name: "Alpha"}); err != nil {
			return err
		}
		return tx.SaveAccount(ctx, domain.Account{AccountID: "acc-cash", LegalEntityID: "le-1", Code: "1030", Name: "Cash", AccountType: domain.Asset, IsActive: true})
	})
	require.NoError(t, err)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := New()
	seedEntity(t, s)
	boom := errors.New("boom")

	err := s.WithTx(context.Background(), func(ctx context.Context, tx portsrepo.TxStore) error {
		require.NoError(t, tx.SaveAccount(ctx, domain.Account{AccountID: "acc-bank", LegalEntityID: "le-1", Code: "1040", AccountType: domain.Asset}))
		row := &domain.GeneralLedgerRow{AccountID: "acc-cash", LegalEntityID: "le-1", DebitAmount: 10, RunningBalance: 10}
		require.NoError(t, tx.AppendLedgerRow(ctx, row))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.WithReadTx(context.Background(), func(ctx context.Context, tx portsrepo.TxReader) error {
		_, err := tx.FindAccountByID(ctx, "acc-bank")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		latest, err := tx.LatestLedgerRow(ctx, "acc-cash")
		assert.NoError(t, err)
		assert.Nil(t, latest)
		return nil
	})
	require.NoError(t, err)
}

func TestReadTxSeesStableSnapshot(t *testing.T) {
	s := New()
	seedEntity(t, s)

	err := s.WithReadTx(context.Background(), func(ctx context.Context, tx portsrepo.TxReader) error {
		require.NoError(t, s.WithTx(ctx, func(ctx context.Context, w portsrepo.TxStore) error {
			return w.SaveAccount(ctx, domain.Account{AccountID: "acc-bank", LegalEntityID: "le-1", Code: "1040", AccountType: domain.Asset})
		}))

		accounts, err := tx.ListAccounts(ctx, "le-1")
		require.NoError(t, err)
		assert.Len(t, accounts, 1)
		return nil
	})
	require.NoError(t, err)
}

func TestSaveAccountDuplicateCode(t *testing.T) {
	s := New()
	seedEntity(t, s)

	err := s.WithTx(context.Background(), func(ctx context.Context, tx portsrepo.TxStore) error {
		return tx.SaveAccount(ctx, domain.Account{AccountID: "acc-2", LegalEntityID: "le-1", Code: "1030", AccountType: domain.Asset})
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestSaveCurrencySingleBase(t *testing.T) {
	s := New()
	err := s.WithTx(context.Background(), func(ctx context.Context, tx portsrepo.TxStore) error {
		if err := tx.SaveCurrency(ctx, domain.Currency{CurrencyID: "c-kzt", Code: "KZT", IsBaseCurrency: true}); err != nil {
			return err
		}
		return tx.SaveCurrency(ctx, domain.Currency{CurrencyID: "c-usd", Code: "USD", IsBaseCurrency: true})
	})
	assert.ErrorIs(t, err, apperrors.ErrBaseCurrency)
}

func TestLedgerOrderingAndLatest(t *testing.T) {
	s := New()
	seedEntity(t, s)
	later := now.AddDate(0, 0, 5)

	err := s.WithTx(context.Background(), func(ctx context.Context, tx portsrepo.TxStore) error {
		rows := []*domain.GeneralLedgerRow{
			{AccountID: "acc-cash", LegalEntityID: "le-1", TransactionDate: later, DebitAmount: 100, RunningBalance: 100},
			{AccountID: "acc-cash", LegalEntityID: "le-1", TransactionDate: now, CreditAmount: 30, RunningBalance: 70},
		}
		for _, row := range rows {
			if err := tx.AppendLedgerRow(ctx, row); err != nil {
				return err
			}
		}
		assert.Equal(t, int64(1), rows[0].Sequence)
		assert.Equal(t, int64(2), rows[1].Sequence)
		return nil
	})
	require.NoError(t, err)

	err = s.WithReadTx(context.Background(), func(ctx context.Context, tx portsrepo.TxReader) error {
		rows, err := tx.ListLedgerRowsByAccount(ctx, "acc-cash")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(2), rows[0].Sequence)
		assert.Equal(t, int64(1), rows[1].Sequence)

		latest, err := tx.LatestLedgerRow(ctx, "acc-cash")
		require.NoError(t, err)
		assert.Equal(t, int64(70), latest.RunningBalance)

		totals, err := tx.SumLedgerByAccount(ctx, "le-1")
		require.NoError(t, err)
		require.Len(t, totals, 1)
		assert.Equal(t, domain.LedgerTotals{AccountID: "acc-cash", TotalDebit: 100, TotalCredit: 30}, totals[0])
		return nil
	})
	require.NoError(t, err)
}

func TestListJournalEntriesCursor(t *testing.T) {
	s := New()
	seedEntity(t, s)

	err := s.WithTx(context.Background(), func(ctx context.Context, tx portsrepo.TxStore) error {
		for i := 0; i < 3; i++ {
			number, err := tx.NextEntryNumber(ctx)
			if err != nil {
				return err
			}
			entry := domain.JournalEntry{
				JournalEntryID: number,
				EntryNumber:    number,
				EntryDate:      now,
				LegalEntityID:  "le-1",
				Status:         domain.Draft,
			}
			if err := tx.SaveJournalEntry(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	err = s.WithReadTx(context.Background(), func(ctx context.Context, tx portsrepo.TxReader) error {
		page, err := tx.ListJournalEntries(ctx, "le-1", 2, nil)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "JE-00000001", page[0].EntryNumber)

		last := page[1]
		rest, err := tx.ListJournalEntries(ctx, "le-1", 2, &portsrepo.JournalCursor{EntryDate: last.EntryDate, EntryNumber: last.EntryNumber})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "JE-00000003", rest[0].EntryNumber)
		return nil
	})
	require.NoError(t, err)
}

func TestWithTxHonoursCancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithTx(ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
