package pgsql_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
	"github.com/nekorytaylor666/infobuh-sub000/internal/platform/config"
	"github.com/nekorytaylor666/infobuh-sub000/internal/repositories/database/pgsql"
	"github.com/nekorytaylor666/infobuh-sub000/internal/seed"
	"github.com/nekorytaylor666/infobuh-sub000/pkg/database"
)

const testUser = "pg-test"

// PgxStoreTestSuite runs the engine against a real PostgreSQL database. It is
// skipped unless TEST_DATABASE_URL is set.
type PgxStoreTestSuite struct {
	suite.Suite
	ctx  context.Context
	pool *pgxpool.Pool
	svc  *portssvc.ServiceContainer
	base *domain.Currency
}

func TestPgxStoreTestSuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, new(PgxStoreTestSuite))
}

func (s *PgxStoreTestSuite) SetupSuite() {
	s.ctx = context.Background()
	url := os.Getenv("TEST_DATABASE_URL")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(database.RunMigrations(logger, url, "file://../../../../migrations"))

	pool, err := database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.pool = pool

	cfg := &config.Config{Bridge: config.DefaultBridgeAccounts()}
	s.svc = services.NewServiceContainer(cfg, pgsql.NewStore(pool), nil)

	s.base, err = s.svc.Currency.GetBaseCurrency(s.ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.base, err = s.svc.Currency.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{Code: "KZT", Name: "Tenge", Decimals: 2, IsBaseCurrency: true}, testUser)
	}
	s.Require().NoError(err)
}

func (s *PgxStoreTestSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
}

func randomBIN() string {
	return fmt.Sprintf("%012d", rand.Int63n(1_000_000_000_000))
}

func (s *PgxStoreTestSuite) onboard() *domain.LegalEntity {
	entity, err := s.svc.LegalEntity.CreateLegalEntity(s.ctx, dto.CreateLegalEntityRequest{BIN: randomBIN(), Name: "PG Test LLP"}, testUser)
	s.Require().NoError(err)
	rows, err := seed.DefaultChart()
	s.Require().NoError(err)
	_, err = s.svc.Account.SeedChartOfAccounts(s.ctx, entity.LegalEntityID, dto.SeedChartRequest{Rows: rows, CreatedBy: testUser})
	s.Require().NoError(err)
	return entity
}

func (s *PgxStoreTestSuite) accountID(entity *domain.LegalEntity, code string) string {
	acc, err := s.svc.Account.GetAccountByCode(s.ctx, entity.LegalEntityID, code)
	s.Require().NoError(err)
	return acc.AccountID
}

func (s *PgxStoreTestSuite) entry(entity *domain.LegalEntity, debit, credit string, amount int64) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		LegalEntityID: entity.LegalEntityID,
		EntryDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		CurrencyID:    s.base.CurrencyID,
		Description:   "pg test",
		Lines: []dto.JournalLineRequest{
			{AccountID: debit, DebitAmount: amount},
			{AccountID: credit, CreditAmount: amount},
		},
	}
}

func (s *PgxStoreTestSuite) TestDuplicateBINIsMapped() {
	entity := s.onboard()
	_, err := s.svc.LegalEntity.CreateLegalEntity(s.ctx, dto.CreateLegalEntityRequest{BIN: entity.BIN, Name: "Again"}, testUser)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *PgxStoreTestSuite) TestPostAndReadBack() {
	entity := s.onboard()
	cash := s.accountID(entity, "1030")
	capital := s.accountID(entity, "5010")

	created, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.entry(entity, cash, capital, 500_00), testUser)
	s.Require().NoError(err)
	posted, err := s.svc.Journal.PostJournalEntry(s.ctx, created.JournalEntryID, testUser)
	s.Require().NoError(err)
	s.Equal(domain.Posted, posted.Status)
	s.Require().NotNil(posted.PostedAt)

	_, err = s.svc.Journal.PostJournalEntry(s.ctx, created.JournalEntryID, testUser)
	s.ErrorIs(err, apperrors.ErrAlreadyPosted)

	got, err := s.svc.Journal.GetJournalEntry(s.ctx, created.JournalEntryID)
	s.Require().NoError(err)
	s.Len(got.Lines, 2)
	s.Equal(1, got.Lines[0].LineNumber)

	bal, err := s.svc.Ledger.AccountBalance(s.ctx, cash)
	s.Require().NoError(err)
	s.Equal(int64(500_00), bal)

	tb, err := s.svc.Reporting.TrialBalance(s.ctx, entity.LegalEntityID)
	s.Require().NoError(err)
	s.Equal(tb.TotalDebit, tb.TotalCredit)
}

// TestConcurrentPostingKeepsRunningBalances posts many entries touching the
// same accounts at once; the account locks must keep every running balance
// equal to the replayed sum.
func (s *PgxStoreTestSuite) TestConcurrentPostingKeepsRunningBalances() {
	entity := s.onboard()
	cash := s.accountID(entity, "1030")
	revenue := s.accountID(entity, "6010")

	const workers = 8
	ids := make([]string, workers)
	for i := range ids {
		e, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.entry(entity, cash, revenue, int64(i+1)*100), testUser)
		s.Require().NoError(err)
		ids[i] = e.JournalEntryID
	}

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := s.svc.Journal.PostJournalEntry(s.ctx, id, testUser); err != nil {
				errs <- err
			}
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	s.NoError(s.svc.Ledger.VerifyAccountLedger(s.ctx, cash))
	s.NoError(s.svc.Ledger.VerifyAccountLedger(s.ctx, revenue))

	bal, err := s.svc.Ledger.AccountBalance(s.ctx, cash)
	s.Require().NoError(err)
	s.Equal(int64(3600), bal)
}

func (s *PgxStoreTestSuite) TestDealBridge() {
	seller := s.onboard()
	buyer := s.onboard()

	created, err := s.svc.Deal.CreateDealWithAccounting(s.ctx, dto.CreateDealRequest{
		LegalEntityID: seller.LegalEntityID,
		Role:          domain.DealRoleSeller,
		ReceiverBIN:   buyer.BIN,
		Reference:     "PG-" + seller.BIN,
		Title:         "Services",
		CurrencyID:    s.base.CurrencyID,
		TotalAmount:   1_000_00,
		EntryDate:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		AutoPost:      true,
	}, testUser)
	s.Require().NoError(err)
	s.False(created.Skipped)

	mirrored, err := s.svc.Deal.CreateDealWithAccounting(s.ctx, dto.CreateDealRequest{
		LegalEntityID: buyer.LegalEntityID,
		Role:          domain.DealRoleBuyer,
		ReceiverBIN:   seller.BIN,
		Reference:     "PG-" + seller.BIN,
		Title:         "Services",
		CurrencyID:    s.base.CurrencyID,
		TotalAmount:   1_000_00,
		EntryDate:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		AutoPost:      true,
	}, testUser)
	s.Require().NoError(err)
	s.True(mirrored.Skipped)

	_, err = s.svc.Deal.RecordPayment(s.ctx, created.Deal.DealID, dto.RecordPaymentRequest{
		Amount: 1_200_00, PaymentDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrOverpayment)

	paid, err := s.svc.Deal.RecordPayment(s.ctx, created.Deal.DealID, dto.RecordPaymentRequest{
		Amount: 1_000_00, PaymentDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), AutoPost: true,
	}, testUser)
	s.Require().NoError(err)
	s.Equal(domain.DealCompleted, paid.Deal.Status)

	report, err := s.svc.Deal.GenerateReconciliationReport(s.ctx, created.Deal.DealID)
	s.Require().NoError(err)
	s.True(report.IsBalanced)
	s.Equal(2, report.PostedEntries)
}

func (s *PgxStoreTestSuite) TestPaidAmountCannotExceedTotal() {
	seller := s.onboard()
	created, err := s.svc.Deal.CreateDealWithAccounting(s.ctx, dto.CreateDealRequest{
		LegalEntityID: seller.LegalEntityID,
		Role:          domain.DealRoleSeller,
		ReceiverBIN:   randomBIN(),
		Reference:     "PG-CAP-" + seller.BIN,
		Title:         "Goods",
		CurrencyID:    s.base.CurrencyID,
		TotalAmount:   500_00,
		EntryDate:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}, testUser)
	s.Require().NoError(err)

	deal := created.Deal
	deal.PaidAmount = 600_00
	err = pgsql.NewStore(s.pool).WithTx(s.ctx, func(ctx context.Context, tx portsrepo.TxStore) error {
		return tx.UpdateDealPayment(ctx, deal)
	})
	s.ErrorIs(err, apperrors.ErrOverpayment)

	stored, err := s.svc.Deal.GetDeal(s.ctx, deal.DealID)
	s.Require().NoError(err)
	s.Zero(stored.PaidAmount)
}
