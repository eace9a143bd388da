package services_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
	"github.com/nekorytaylor666/infobuh-sub000/internal/seed"
)

type AccountServiceTestSuite struct {
	engineSuite
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) TestCreateAccount() {
	parentID := s.accountID(s.alpha, "1000")
	acc, err := s.svc.Account.CreateAccount(s.ctx, s.alpha.LegalEntityID, dto.CreateAccountRequest{
		Code:        "1020",
		Name:        "Petty cash",
		AccountType: domain.Asset,
		ParentID:    &parentID,
	}, testUser)
	s.Require().NoError(err)
	s.True(acc.IsActive)
	s.Equal(s.alpha.LegalEntityID, acc.LegalEntityID)
	s.Equal(testUser, acc.CreatedBy)
	s.Equal(fixedNow, acc.CreatedAt)

	got, err := s.svc.Account.GetAccountByCode(s.ctx, s.alpha.LegalEntityID, "1020")
	s.Require().NoError(err)
	s.Equal(acc.AccountID, got.AccountID)
}

func (s *AccountServiceTestSuite) TestCreateAccountErrors() {
	tests := []struct {
		name string
		req  dto.CreateAccountRequest
		want error
	}{
		{
			name: "duplicate code",
			req:  dto.CreateAccountRequest{Code: "1030", Name: "Cash again", AccountType: domain.Asset},
			want: apperrors.ErrDuplicate,
		},
		{
			name: "unknown type",
			req:  dto.CreateAccountRequest{Code: "9999", Name: "Odd", AccountType: "contra"},
			want: apperrors.ErrValidation,
		},
		{
			name: "missing name",
			req:  dto.CreateAccountRequest{Code: "9998", AccountType: domain.Asset},
			want: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Account.CreateAccount(s.ctx, s.alpha.LegalEntityID, tt.req, testUser)
			s.ErrorIs(err, tt.want)
		})
	}
}

func (s *AccountServiceTestSuite) TestParentFromAnotherEntity() {
	foreignParent := s.accountID(s.beta, "1000")
	_, err := s.svc.Account.CreateAccount(s.ctx, s.alpha.LegalEntityID, dto.CreateAccountRequest{
		Code:        "1020",
		Name:        "Petty cash",
		AccountType: domain.Asset,
		ParentID:    &foreignParent,
	}, testUser)
	s.ErrorIs(err, apperrors.ErrCrossEntity)
}

func (s *AccountServiceTestSuite) TestAccountsAreScopedToEntity() {
	betaCash := s.accountID(s.beta, "1030")
	_, err := s.svc.Account.GetAccountByID(s.ctx, s.alpha.LegalEntityID, betaCash)
	s.ErrorIs(err, apperrors.ErrNotFound)

	err = s.svc.Account.DeactivateAccount(s.ctx, s.alpha.LegalEntityID, betaCash, testUser)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestAccountTree() {
	roots, err := s.svc.Account.AccountTree(s.ctx, s.alpha.LegalEntityID)
	s.Require().NoError(err)
	s.Require().NotEmpty(roots)
	s.Equal("1000", roots[0].Code)

	var cash *domain.AccountNode
	for _, child := range roots[0].Children {
		if child.Code == "1030" {
			cash = child
		}
	}
	s.Require().NotNil(cash)
	s.Empty(cash.Children)
}

func (s *AccountServiceTestSuite) TestDeactivatedAccountRejectsNewEntries() {
	cash := s.accountID(s.alpha, "1030")
	s.Require().NoError(s.svc.Account.DeactivateAccount(s.ctx, s.alpha.LegalEntityID, cash, testUser))

	acc, err := s.svc.Account.GetAccountByID(s.ctx, s.alpha.LegalEntityID, cash)
	s.Require().NoError(err)
	s.False(acc.IsActive)

	_, err = s.svc.Journal.CreateJournalEntry(s.ctx, s.entryRequest(s.alpha, day(1),
		dr(cash, 100), cr(s.accountID(s.alpha, "5010"), 100)), testUser)
	s.ErrorIs(err, apperrors.ErrInactiveAccount)

	// deactivating twice is a no-op
	s.NoError(s.svc.Account.DeactivateAccount(s.ctx, s.alpha.LegalEntityID, cash, testUser))
}

func (s *AccountServiceTestSuite) TestSeedIsIdempotent() {
	rows, err := seed.DefaultChart()
	s.Require().NoError(err)

	result, err := s.svc.Account.SeedChartOfAccounts(s.ctx, s.alpha.LegalEntityID, dto.SeedChartRequest{Rows: rows, CreatedBy: testUser})
	s.Require().NoError(err)
	s.Zero(result.Created)
	s.Equal(len(rows), result.Existing)
	s.Zero(result.Passes)
}

func (s *AccountServiceTestSuite) TestSeedResolvesParentsInAnyOrder() {
	entity, err := s.svc.LegalEntity.CreateLegalEntity(s.ctx, dto.CreateLegalEntityRequest{BIN: "333333333333", Name: "Gamma LLP"}, testUser)
	s.Require().NoError(err)

	rows, err := seed.DefaultChart()
	s.Require().NoError(err)
	shuffled := make([]domain.ChartRow, len(rows))
	copy(shuffled, rows)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	// children first guarantees more than one pass
	for i, row := range shuffled {
		if row.ParentCode != "" {
			shuffled[0], shuffled[i] = shuffled[i], shuffled[0]
			break
		}
	}

	result, err := s.svc.Account.SeedChartOfAccounts(s.ctx, entity.LegalEntityID, dto.SeedChartRequest{Rows: shuffled, CreatedBy: testUser})
	s.Require().NoError(err)
	s.Equal(len(rows), result.Created)
	s.GreaterOrEqual(result.Passes, 2)

	accounts, err := s.svc.Account.ListAccounts(s.ctx, entity.LegalEntityID)
	s.Require().NoError(err)
	s.Len(accounts, len(rows))

	cash, err := s.svc.Account.GetAccountByCode(s.ctx, entity.LegalEntityID, "1030")
	s.Require().NoError(err)
	parent, err := s.svc.Account.GetAccountByCode(s.ctx, entity.LegalEntityID, "1000")
	s.Require().NoError(err)
	s.Require().NotNil(cash.ParentID)
	s.Equal(parent.AccountID, *cash.ParentID)
}

func (s *AccountServiceTestSuite) TestSeedWithUnresolvableParent() {
	entity, err := s.svc.LegalEntity.CreateLegalEntity(s.ctx, dto.CreateLegalEntityRequest{BIN: "444444444444", Name: "Delta LLP"}, testUser)
	s.Require().NoError(err)

	rows := []domain.ChartRow{
		{Code: "1000", Name: "Current assets", AccountType: domain.Asset},
		{Code: "1030", Name: "Cash", AccountType: domain.Asset, ParentCode: "1000"},
		{Code: "8010", Name: "Orphan", AccountType: domain.Expense, ParentCode: "8000"},
	}
	_, err = s.svc.Account.SeedChartOfAccounts(s.ctx, entity.LegalEntityID, dto.SeedChartRequest{Rows: rows, CreatedBy: testUser})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "8010(parent 8000)")

	// the run is atomic
	accounts, err := s.svc.Account.ListAccounts(s.ctx, entity.LegalEntityID)
	s.Require().NoError(err)
	s.Empty(accounts)
}

func (s *AccountServiceTestSuite) TestSeedRequiresCreator() {
	rows, err := seed.DefaultChart()
	s.Require().NoError(err)

	_, err = s.svc.Account.SeedChartOfAccounts(s.ctx, s.alpha.LegalEntityID, dto.SeedChartRequest{Rows: rows})
	s.ErrorIs(err, apperrors.ErrValidation)
}
