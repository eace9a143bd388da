package dto

import (
	"github.com/shopspring/decimal"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// AccountAmountResponse represents an account with its amount in major currency units.
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Currency string                    `json:"currency"`
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Totals   struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// IncomeStatementResponse represents the income statement in major units.
type IncomeStatementResponse struct {
	Currency  string                  `json:"currency"`
	Revenue   []AccountAmountResponse `json:"revenue"`
	Expenses  []AccountAmountResponse `json:"expenses"`
	NetIncome decimal.Decimal         `json:"netIncome"`
}

// BalanceSheetResponse represents the balance sheet in major units.
type BalanceSheetResponse struct {
	Currency    string                  `json:"currency"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		CurrentResult    decimal.Decimal `json:"currentResult"`
		IsBalanced       bool            `json:"isBalanced"`
	} `json:"summary"`
}

func toAmountResponses(cur domain.Currency, lines []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(lines))
	for i, l := range lines {
		out[i] = AccountAmountResponse{
			AccountID: l.AccountID,
			Code:      l.Code,
			Name:      l.Name,
			Amount:    cur.FromMinorUnits(l.NetAmount),
		}
	}
	return out
}

// ToTrialBalanceResponse converts a trial balance into major units of cur.
func ToTrialBalanceResponse(cur domain.Currency, tb domain.TrialBalance) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		Currency: cur.Code,
		Rows:     make([]TrialBalanceRowResponse, len(tb.Rows)),
	}
	for i, r := range tb.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			AccountCode: r.AccountCode,
			AccountName: r.AccountName,
			AccountType: string(r.AccountType),
			Debit:       cur.FromMinorUnits(r.DebitBalance),
			Credit:      cur.FromMinorUnits(r.CreditBalance),
		}
	}
	resp.Totals.Debit = cur.FromMinorUnits(tb.TotalDebit)
	resp.Totals.Credit = cur.FromMinorUnits(tb.TotalCredit)
	return resp
}

// ToIncomeStatementResponse converts an income statement into major units of cur.
func ToIncomeStatementResponse(cur domain.Currency, is domain.IncomeStatement) IncomeStatementResponse {
	return IncomeStatementResponse{
		Currency:  cur.Code,
		Revenue:   toAmountResponses(cur, is.Revenue.Lines),
		Expenses:  toAmountResponses(cur, is.Expenses.Lines),
		NetIncome: cur.FromMinorUnits(is.NetIncome),
	}
}

// ToBalanceSheetResponse flattens a balance sheet into major units of cur.
func ToBalanceSheetResponse(cur domain.Currency, bs domain.BalanceSheet) BalanceSheetResponse {
	assets := append(append([]domain.AccountAmount{}, bs.Assets.Current.Lines...), bs.Assets.NonCurrent.Lines...)
	liabilities := append(append([]domain.AccountAmount{}, bs.Liabilities.Current.Lines...), bs.Liabilities.LongTerm.Lines...)

	resp := BalanceSheetResponse{
		Currency:    cur.Code,
		Assets:      toAmountResponses(cur, assets),
		Liabilities: toAmountResponses(cur, liabilities),
		Equity:      toAmountResponses(cur, bs.Equity.Accounts.Lines),
	}
	resp.Summary.TotalAssets = cur.FromMinorUnits(bs.Assets.Total)
	resp.Summary.TotalLiabilities = cur.FromMinorUnits(bs.Liabilities.Total)
	resp.Summary.TotalEquity = cur.FromMinorUnits(bs.Equity.Total)
	resp.Summary.CurrentResult = cur.FromMinorUnits(bs.Equity.CurrentResult)
	resp.Summary.IsBalanced = bs.IsBalanced
	return resp
}
