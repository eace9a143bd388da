package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/utils/accounting"
)

// reportingService derives financial statements from ledger totals. Nothing
// is cached; every report is recomputed from a consistent read snapshot.
type reportingService struct {
	BaseService
	txm portsrepo.TransactionManager
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(txm portsrepo.TransactionManager, options ...ServiceOption) portssvc.ReportingSvc {
	return &reportingService{BaseService: newBaseService(options), txm: txm}
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// TrialBalance aggregates debit and credit totals per account.
func (s *reportingService) TrialBalance(ctx context.Context, legalEntityID string) (*domain.TrialBalance, error) {
	var tb *domain.TrialBalance
	err := s.txm.WithReadTx(ctx, func(ctx context.Context, tx portsrepo.TxReader) error {
		var err error
		tb, err = buildTrialBalance(ctx, tx, legalEntityID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build trial balance", slog.String("legal_entity_id", legalEntityID))
		return nil, err
	}
	s.LogDebug(ctx, "Trial balance built", slog.String("legal_entity_id", legalEntityID), slog.Int("rows", len(tb.Rows)))
	return tb, nil
}

// IncomeStatement sums revenue and expense balances into net income.
func (s *reportingService) IncomeStatement(ctx context.Context, legalEntityID string) (*domain.IncomeStatement, error) {
	tb, err := s.TrialBalance(ctx, legalEntityID)
	if err != nil {
		return nil, err
	}
	return incomeStatementFrom(tb)
}

// BalanceSheet buckets assets, liabilities and equity, folding the
// current-period result into equity.
func (s *reportingService) BalanceSheet(ctx context.Context, legalEntityID string) (*domain.BalanceSheet, error) {
	tb, err := s.TrialBalance(ctx, legalEntityID)
	if err != nil {
		return nil, err
	}
	bs, err := balanceSheetFrom(tb)
	if err != nil {
		return nil, err
	}
	if !bs.IsBalanced {
		s.LogWarn(ctx, "Balance sheet does not balance",
			slog.String("legal_entity_id", legalEntityID),
			slog.Int64("assets", bs.Assets.Total),
			slog.Int64("liabilities", bs.Liabilities.Total),
			slog.Int64("equity", bs.Equity.Total))
	}
	return bs, nil
}

func buildTrialBalance(ctx context.Context, tx portsrepo.TxReader, legalEntityID string) (*domain.TrialBalance, error) {
	if _, err := tx.FindLegalEntityByID(ctx, legalEntityID); err != nil {
		return nil, err
	}
	accounts, err := tx.ListAccounts(ctx, legalEntityID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}

	totals, err := tx.SumLedgerByAccount(ctx, legalEntityID)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{LegalEntityID: legalEntityID, Rows: make([]domain.TrialBalanceRow, 0, len(totals))}
	for _, t := range totals {
		acc, ok := byID[t.AccountID]
		if !ok {
			return nil, fmt.Errorf("ledger references unknown account %s", t.AccountID)
		}
		net, err := accounting.CheckedSub(t.TotalDebit, t.TotalCredit)
		if err != nil {
			return nil, err
		}
		debit, credit := accounting.TrialBalanceColumns(net)
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountID:     acc.AccountID,
			AccountCode:   acc.Code,
			AccountName:   acc.Name,
			AccountType:   acc.AccountType,
			DebitBalance:  debit,
			CreditBalance: credit,
		})
		if tb.TotalDebit, err = accounting.CheckedAdd(tb.TotalDebit, debit); err != nil {
			return nil, err
		}
		if tb.TotalCredit, err = accounting.CheckedAdd(tb.TotalCredit, credit); err != nil {
			return nil, err
		}
	}
	sort.Slice(tb.Rows, func(i, j int) bool { return tb.Rows[i].AccountCode < tb.Rows[j].AccountCode })
	return tb, nil
}

// normalAmount is the row's balance in the account type's normal direction.
func normalAmount(row domain.TrialBalanceRow) (domain.AccountAmount, error) {
	net, err := accounting.NetBalance(row.AccountType, row.DebitBalance, row.CreditBalance)
	if err != nil {
		return domain.AccountAmount{}, err
	}
	return domain.AccountAmount{AccountID: row.AccountID, Code: row.AccountCode, Name: row.AccountName, NetAmount: net}, nil
}

func incomeStatementFrom(tb *domain.TrialBalance) (*domain.IncomeStatement, error) {
	is := &domain.IncomeStatement{
		LegalEntityID: tb.LegalEntityID,
		Revenue:       domain.ReportSection{Lines: []domain.AccountAmount{}},
		Expenses:      domain.ReportSection{Lines: []domain.AccountAmount{}},
	}
	for _, row := range tb.Rows {
		if row.AccountType != domain.Revenue && row.AccountType != domain.Expense {
			continue
		}
		line, err := normalAmount(row)
		if err != nil {
			return nil, err
		}
		if row.AccountType == domain.Revenue {
			is.Revenue.Add(line)
		} else {
			is.Expenses.Add(line)
		}
	}
	is.NetIncome = is.Revenue.Total - is.Expenses.Total
	return is, nil
}

func balanceSheetFrom(tb *domain.TrialBalance) (*domain.BalanceSheet, error) {
	bs := &domain.BalanceSheet{
		LegalEntityID: tb.LegalEntityID,
		Assets: domain.AssetSection{
			Current:    domain.ReportSection{Lines: []domain.AccountAmount{}},
			NonCurrent: domain.ReportSection{Lines: []domain.AccountAmount{}},
		},
		Liabilities: domain.LiabilitySection{
			Current:  domain.ReportSection{Lines: []domain.AccountAmount{}},
			LongTerm: domain.ReportSection{Lines: []domain.AccountAmount{}},
		},
		Equity: domain.EquitySection{
			Accounts: domain.ReportSection{Lines: []domain.AccountAmount{}},
		},
	}
	for _, row := range tb.Rows {
		line, err := normalAmount(row)
		if err != nil {
			return nil, err
		}
		switch row.AccountType {
		case domain.Asset:
			if accounting.IsCurrentAsset(row.AccountCode) {
				bs.Assets.Current.Add(line)
			} else {
				bs.Assets.NonCurrent.Add(line)
			}
		case domain.Liability:
			if accounting.IsCurrentLiability(row.AccountCode) {
				bs.Liabilities.Current.Add(line)
			} else {
				bs.Liabilities.LongTerm.Add(line)
			}
		case domain.Equity:
			bs.Equity.Accounts.Add(line)
		}
	}

	bs.Assets.Total = bs.Assets.Current.Total + bs.Assets.NonCurrent.Total
	bs.Liabilities.Total = bs.Liabilities.Current.Total + bs.Liabilities.LongTerm.Total
	is, err := incomeStatementFrom(tb)
	if err != nil {
		return nil, err
	}
	bs.Equity.CurrentResult = is.NetIncome
	bs.Equity.Total = bs.Equity.Accounts.Total + bs.Equity.CurrentResult
	bs.IsBalanced = bs.Assets.Total-bs.Liabilities.Total-bs.Equity.Total == 0
	return bs, nil
}
