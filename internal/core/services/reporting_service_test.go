package services_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

type ReportingServiceTestSuite struct {
	engineSuite
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (s *ReportingServiceTestSuite) bookYear() {
	id := func(code string) string { return s.accountID(s.alpha, code) }

	s.post(s.alpha, day(1), dr(id("1030"), 5_000_00), cr(id("5010"), 5_000_00))
	s.post(s.alpha, day(2), dr(id("2410"), 3_000_00), cr(id("4010"), 3_000_00))
	s.post(s.alpha, day(3), dr(id("1210"), 2_000_00), cr(id("6010"), 2_000_00))
	s.post(s.alpha, day(4), dr(id("7210"), 800_00), cr(id("3310"), 800_00))
	s.post(s.alpha, day(5), dr(id("1030"), 1_500_00), cr(id("1210"), 1_500_00))
	s.post(s.alpha, day(6), dr(id("3310"), 300_00), cr(id("1030"), 300_00))
}

func (s *ReportingServiceTestSuite) TestTrialBalance() {
	s.bookYear()

	tb, err := s.svc.Reporting.TrialBalance(s.ctx, s.alpha.LegalEntityID)
	s.Require().NoError(err)

	rows := make(map[string]domain.TrialBalanceRow)
	for i, row := range tb.Rows {
		rows[row.AccountCode] = row
		if i > 0 {
			s.Less(tb.Rows[i-1].AccountCode, row.AccountCode)
		}
		s.False(row.DebitBalance != 0 && row.CreditBalance != 0, "account %s has both columns", row.AccountCode)
	}

	s.Equal(int64(6_200_00), rows["1030"].DebitBalance)
	s.Equal(int64(500_00), rows["1210"].DebitBalance)
	s.Equal(int64(500_00), rows["3310"].CreditBalance)
	s.Equal(int64(5_000_00), rows["5010"].CreditBalance)
	s.Equal(int64(2_000_00), rows["6010"].CreditBalance)
	s.Equal(tb.TotalDebit, tb.TotalCredit)
}

func (s *ReportingServiceTestSuite) TestTrialBalance_AnomalousSignOnOppositeColumn() {
	cash := s.accountID(s.alpha, "1030")
	s.post(s.alpha, day(1), dr(s.accountID(s.alpha, "7210"), 50), cr(cash, 50))

	tb, err := s.svc.Reporting.TrialBalance(s.ctx, s.alpha.LegalEntityID)
	s.Require().NoError(err)
	for _, row := range tb.Rows {
		if row.AccountCode == "1030" {
			s.Zero(row.DebitBalance)
			s.Equal(int64(50), row.CreditBalance)
		}
	}
}

func (s *ReportingServiceTestSuite) TestIncomeStatement() {
	s.bookYear()

	is, err := s.svc.Reporting.IncomeStatement(s.ctx, s.alpha.LegalEntityID)
	s.Require().NoError(err)
	s.Equal(int64(2_000_00), is.Revenue.Total)
	s.Equal(int64(800_00), is.Expenses.Total)
	s.Equal(int64(1_200_00), is.NetIncome)
	s.Len(is.Revenue.Lines, 1)
}

func (s *ReportingServiceTestSuite) TestBalanceSheet_Identity() {
	s.bookYear()

	bs, err := s.svc.Reporting.BalanceSheet(s.ctx, s.alpha.LegalEntityID)
	s.Require().NoError(err)

	s.Equal(int64(6_700_00), bs.Assets.Current.Total)
	s.Equal(int64(3_000_00), bs.Assets.NonCurrent.Total)
	s.Equal(int64(500_00), bs.Liabilities.Current.Total)
	s.Equal(int64(3_000_00), bs.Liabilities.LongTerm.Total)
	s.Equal(int64(1_200_00), bs.Equity.CurrentResult)
	s.Equal(int64(6_200_00), bs.Equity.Total)
	s.Zero(bs.Assets.Total - bs.Liabilities.Total - bs.Equity.Total)
	s.True(bs.IsBalanced)
}

func (s *ReportingServiceTestSuite) TestReportsAreScopedToLegalEntity() {
	s.bookYear()

	tb, err := s.svc.Reporting.TrialBalance(s.ctx, s.beta.LegalEntityID)
	s.Require().NoError(err)
	s.Empty(tb.Rows)

	bs, err := s.svc.Reporting.BalanceSheet(s.ctx, s.beta.LegalEntityID)
	s.Require().NoError(err)
	s.True(bs.IsBalanced)
	s.Zero(bs.Assets.Total)

	_, err = s.svc.Reporting.TrialBalance(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}
