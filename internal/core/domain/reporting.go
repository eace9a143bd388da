package domain

// TrialBalanceRow represents a single account in a trial balance. At most one
// of DebitBalance and CreditBalance is non-zero.
type TrialBalanceRow struct {
	AccountID     string      `json:"accountID"`
	AccountCode   string      `json:"accountCode"`
	AccountName   string      `json:"accountName"`
	AccountType   AccountType `json:"accountType"`
	DebitBalance  int64       `json:"debitBalance"`
	CreditBalance int64       `json:"creditBalance"`
}

// TrialBalance is the per-account net position of a legal entity.
type TrialBalance struct {
	LegalEntityID string            `json:"legalEntityID"`
	Rows          []TrialBalanceRow `json:"rows"`
	TotalDebit    int64             `json:"totalDebit"`
	TotalCredit   int64             `json:"totalCredit"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string `json:"accountID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	NetAmount int64  `json:"netAmount"`
}

// ReportSection is a list of report lines and their sum.
type ReportSection struct {
	Lines []AccountAmount `json:"lines"`
	Total int64           `json:"total"`
}

// Add appends a line and accumulates the total.
func (s *ReportSection) Add(line AccountAmount) {
	s.Lines = append(s.Lines, line)
	s.Total += line.NetAmount
}

// IncomeStatement represents a profit and loss report.
type IncomeStatement struct {
	LegalEntityID string        `json:"legalEntityID"`
	Revenue       ReportSection `json:"revenue"`
	Expenses      ReportSection `json:"expenses"`
	NetIncome     int64         `json:"netIncome"`
}

// AssetSection splits assets by liquidity.
type AssetSection struct {
	Current    ReportSection `json:"current"`
	NonCurrent ReportSection `json:"nonCurrent"`
	Total      int64         `json:"total"`
}

// LiabilitySection splits liabilities by maturity.
type LiabilitySection struct {
	Current  ReportSection `json:"current"`
	LongTerm ReportSection `json:"longTerm"`
	Total    int64         `json:"total"`
}

// EquitySection holds equity accounts plus the not yet closed result of the period.
type EquitySection struct {
	Accounts      ReportSection `json:"accounts"`
	CurrentResult int64         `json:"currentResult"`
	Total         int64         `json:"total"`
}

// BalanceSheet represents a balance sheet report.
type BalanceSheet struct {
	LegalEntityID string           `json:"legalEntityID"`
	Assets        AssetSection     `json:"assets"`
	Liabilities   LiabilitySection `json:"liabilities"`
	Equity        EquitySection    `json:"equity"`
	IsBalanced    bool             `json:"isBalanced"`
}
