package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
	"github.com/nekorytaylor666/infobuh-sub000/internal/platform/config"
	"github.com/nekorytaylor666/infobuh-sub000/internal/repositories/memory"
	"github.com/nekorytaylor666/infobuh-sub000/internal/seed"
)

const (
	testUser = "user-1"
	binAlpha = "111111111111"
	binBeta  = "222222222222"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

// MockDocumentGenerator is a mock type for the DocumentGenerator interface
type MockDocumentGenerator struct {
	mock.Mock
}

func (m *MockDocumentGenerator) GenerateDealDocument(ctx context.Context, deal domain.Deal, entry *domain.JournalEntry) (*domain.DocumentRef, error) {
	args := m.Called(ctx, deal, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRef), args.Error(1)
}

// engineSuite wires every service to a fresh in-memory store with two legal
// entities that both carry the default chart of accounts.
type engineSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	docs  *MockDocumentGenerator
	svc   *portssvc.ServiceContainer

	alpha *domain.LegalEntity
	beta  *domain.LegalEntity
	kzt   *domain.Currency
}

func (s *engineSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.docs = new(MockDocumentGenerator)
	s.docs.On("GenerateDealDocument", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.DocumentRef{DocumentID: "doc-1", StoragePath: "deals/doc-1.pdf"}, nil).Maybe()
	s.svc = s.newContainer(s.docs)

	var err error
	s.kzt, err = s.svc.Currency.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{Code: "KZT", Name: "Tenge", Decimals: 2, IsBaseCurrency: true}, testUser)
	s.Require().NoError(err)

	s.alpha = s.onboard(binAlpha, "Alpha LLP")
	s.beta = s.onboard(binBeta, "Beta LLP")
}

func (s *engineSuite) newContainer(docs portssvc.DocumentGenerator) *portssvc.ServiceContainer {
	cfg := &config.Config{Bridge: config.DefaultBridgeAccounts()}
	return services.NewServiceContainer(cfg, s.store, docs, services.WithClock(func() time.Time { return fixedNow }))
}

func (s *engineSuite) onboard(bin, name string) *domain.LegalEntity {
	entity, err := s.svc.LegalEntity.CreateLegalEntity(s.ctx, dto.CreateLegalEntityRequest{BIN: bin, Name: name}, testUser)
	s.Require().NoError(err)

	rows, err := seed.DefaultChart()
	s.Require().NoError(err)
	_, err = s.svc.Account.SeedChartOfAccounts(s.ctx, entity.LegalEntityID, dto.SeedChartRequest{Rows: rows, CreatedBy: testUser})
	s.Require().NoError(err)
	return entity
}

func (s *engineSuite) accountID(entity *domain.LegalEntity, code string) string {
	acc, err := s.svc.Account.GetAccountByCode(s.ctx, entity.LegalEntityID, code)
	s.Require().NoError(err)
	return acc.AccountID
}

func dr(accountID string, amount int64) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, DebitAmount: amount}
}

func cr(accountID string, amount int64) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, CreditAmount: amount}
}

func (s *engineSuite) entryRequest(entity *domain.LegalEntity, date time.Time, lines ...dto.JournalLineRequest) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		LegalEntityID: entity.LegalEntityID,
		EntryDate:     date,
		CurrencyID:    s.kzt.CurrencyID,
		Description:   "test entry",
		Lines:         lines,
	}
}

// post creates and posts an entry, failing the test on any error.
func (s *engineSuite) post(entity *domain.LegalEntity, date time.Time, lines ...dto.JournalLineRequest) *domain.JournalEntry {
	entry, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.entryRequest(entity, date, lines...), testUser)
	s.Require().NoError(err)
	posted, err := s.svc.Journal.PostJournalEntry(s.ctx, entry.JournalEntryID, testUser)
	s.Require().NoError(err)
	return posted
}

func (s *engineSuite) balance(entity *domain.LegalEntity, code string) int64 {
	b, err := s.svc.Ledger.AccountBalance(s.ctx, s.accountID(entity, code))
	s.Require().NoError(err)
	return b
}
