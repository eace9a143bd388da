package services_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

type JournalServiceTestSuite struct {
	engineSuite
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	cash := s.accountID(s.alpha, "1030")
	capital := s.accountID(s.alpha, "5010")

	entry, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.entryRequest(s.alpha, day(1), dr(cash, 500_00), cr(capital, 500_00)), testUser)
	s.Require().NoError(err)

	s.Equal(domain.Draft, entry.Status)
	s.Equal("JE-00000001", entry.EntryNumber)
	s.Equal(int64(500_00), entry.TotalDebit)
	s.Equal(entry.TotalDebit, entry.TotalCredit)
	s.Require().Len(entry.Lines, 2)
	s.Equal(1, entry.Lines[0].LineNumber)
	s.Equal(2, entry.Lines[1].LineNumber)
	s.Equal(testUser, entry.CreatedBy)
	s.Equal(fixedNow, entry.CreatedAt)

	stored, err := s.svc.Journal.GetJournalEntry(s.ctx, entry.JournalEntryID)
	s.Require().NoError(err)
	s.Equal(entry.Lines, stored.Lines)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_Rejections() {
	cash := s.accountID(s.alpha, "1030")
	capital := s.accountID(s.alpha, "5010")
	betaCash := s.accountID(s.beta, "1030")

	tests := []struct {
		name    string
		lines   []dto.JournalLineRequest
		wantErr error
	}{
		{"unbalanced", []dto.JournalLineRequest{dr(cash, 100), cr(capital, 90)}, apperrors.ErrUnbalanced},
		{"single line", []dto.JournalLineRequest{dr(cash, 100)}, apperrors.ErrMinLines},
		{"both sides on a line", []dto.JournalLineRequest{{AccountID: cash, DebitAmount: 100, CreditAmount: 100}, cr(capital, 0)}, apperrors.ErrLineSide},
		{"zero line", []dto.JournalLineRequest{dr(cash, 100), cr(capital, 100), dr(cash, 0)}, apperrors.ErrLineSide},
		{"overflow", []dto.JournalLineRequest{dr(cash, math.MaxInt64), dr(cash, 1), cr(capital, 1)}, apperrors.ErrAmountOverflow},
		{"other legal entity", []dto.JournalLineRequest{dr(betaCash, 100), cr(capital, 100)}, apperrors.ErrCrossEntity},
		{"missing account", []dto.JournalLineRequest{dr("nope", 100), cr(capital, 100)}, apperrors.ErrNotFound},
		{"negative amount", []dto.JournalLineRequest{dr(cash, -100), cr(capital, -100)}, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.entryRequest(s.alpha, day(1), tt.lines...), testUser)
			s.Require().Error(err)
			s.ErrorIs(err, tt.wantErr)
		})
	}

	page, err := s.svc.Journal.ListJournalEntries(s.ctx, s.alpha.LegalEntityID, dto.ListJournalEntriesParams{})
	s.Require().NoError(err)
	s.Empty(page.Entries, "rejected entries must not be persisted")
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_InactiveAccount() {
	cash := s.accountID(s.alpha, "1030")
	capital := s.accountID(s.alpha, "5010")
	s.Require().NoError(s.svc.Account.DeactivateAccount(s.ctx, s.alpha.LegalEntityID, capital, testUser))

	_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.entryRequest(s.alpha, day(1), dr(cash, 100), cr(capital, 100)), testUser)
	s.ErrorIs(err, apperrors.ErrInactiveAccount)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_UnknownCurrency() {
	req := s.entryRequest(s.alpha, day(1), dr(s.accountID(s.alpha, "1030"), 100), cr(s.accountID(s.alpha, "5010"), 100))
	req.CurrencyID = "missing"

	_, err := s.svc.Journal.CreateJournalEntry(s.ctx, req, testUser)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_WritesLedgerOnce() {
	cash := s.accountID(s.alpha, "1030")
	capital := s.accountID(s.alpha, "5010")

	entry, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.entryRequest(s.alpha, day(1), dr(cash, 700), cr(capital, 700)), testUser)
	s.Require().NoError(err)

	posted, err := s.svc.Journal.PostJournalEntry(s.ctx, entry.JournalEntryID, "poster")
	s.Require().NoError(err)
	s.Equal(domain.Posted, posted.Status)
	s.Require().NotNil(posted.PostedBy)
	s.Equal("poster", *posted.PostedBy)

	_, err = s.svc.Journal.PostJournalEntry(s.ctx, entry.JournalEntryID, "poster")
	s.ErrorIs(err, apperrors.ErrAlreadyPosted)
	s.ErrorIs(err, apperrors.ErrState)

	rows, err := s.svc.Ledger.LedgerFor(s.ctx, cash)
	s.Require().NoError(err)
	s.Len(rows, 1)
	s.Equal(int64(700), rows[0].RunningBalance)

	rows, err = s.svc.Ledger.LedgerFor(s.ctx, capital)
	s.Require().NoError(err)
	s.Len(rows, 1)
	s.Equal(int64(-700), rows[0].RunningBalance)

	stored, err := s.svc.Journal.GetJournalEntry(s.ctx, entry.JournalEntryID)
	s.Require().NoError(err)
	s.Equal(domain.Posted, stored.Status)
	s.NotNil(stored.PostedAt)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_NotFound() {
	_, err := s.svc.Journal.PostJournalEntry(s.ctx, "missing", testUser)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_SameAccountTwiceInOneEntry() {
	cash := s.accountID(s.alpha, "1030")
	bank := s.accountID(s.alpha, "1010")

	s.post(s.alpha, day(1), dr(cash, 300), dr(cash, 200), cr(bank, 500))

	rows, err := s.svc.Ledger.LedgerFor(s.ctx, cash)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(int64(300), rows[0].RunningBalance)
	s.Equal(int64(500), rows[1].RunningBalance)
}

func (s *JournalServiceTestSuite) TestCancelJournalEntry() {
	cash := s.accountID(s.alpha, "1030")
	capital := s.accountID(s.alpha, "5010")

	draft, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.entryRequest(s.alpha, day(1), dr(cash, 100), cr(capital, 100)), testUser)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Journal.CancelJournalEntry(s.ctx, draft.JournalEntryID, testUser))

	_, err = s.svc.Journal.PostJournalEntry(s.ctx, draft.JournalEntryID, testUser)
	s.ErrorIs(err, apperrors.ErrNotDraft)

	posted := s.post(s.alpha, day(2), dr(cash, 100), cr(capital, 100))
	err = s.svc.Journal.CancelJournalEntry(s.ctx, posted.JournalEntryID, testUser)
	s.ErrorIs(err, apperrors.ErrNotDraft)

	s.Equal(int64(100), s.balance(s.alpha, "1030"))
}

func (s *JournalServiceTestSuite) TestListJournalEntries_Pagination() {
	cash := s.accountID(s.alpha, "1030")
	capital := s.accountID(s.alpha, "5010")
	for _, d := range []int{3, 1, 2, 2} {
		_, err := s.svc.Journal.CreateJournalEntry(s.ctx, s.entryRequest(s.alpha, day(d), dr(cash, 10), cr(capital, 10)), testUser)
		s.Require().NoError(err)
	}
	s.post(s.beta, day(1), dr(s.accountID(s.beta, "1030"), 10), cr(s.accountID(s.beta, "5010"), 10))

	var seen []domain.JournalEntry
	params := dto.ListJournalEntriesParams{Limit: 3}
	for {
		page, err := s.svc.Journal.ListJournalEntries(s.ctx, s.alpha.LegalEntityID, params)
		s.Require().NoError(err)
		seen = append(seen, page.Entries...)
		if page.NextToken == nil {
			break
		}
		params.NextToken = page.NextToken
	}

	s.Require().Len(seen, 4)
	for i := 1; i < len(seen); i++ {
		prev, cur := seen[i-1], seen[i]
		s.True(prev.EntryDate.Before(cur.EntryDate) ||
			(prev.EntryDate.Equal(cur.EntryDate) && prev.EntryNumber < cur.EntryNumber))
	}
	s.Equal(day(1), seen[0].EntryDate)
}

func (s *JournalServiceTestSuite) TestListJournalEntries_BadToken() {
	token := "%%%"
	_, err := s.svc.Journal.ListJournalEntries(s.ctx, s.alpha.LegalEntityID, dto.ListJournalEntriesParams{NextToken: &token})
	s.ErrorIs(err, apperrors.ErrValidation)
}
