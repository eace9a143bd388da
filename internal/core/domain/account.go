package domain

import "sort"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether the account type grows on the debit side.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a node of a legal entity's chart of accounts.
type Account struct {
	AccountID     string      `json:"accountID"`
	LegalEntityID string      `json:"legalEntityID"`
	Code          string      `json:"code"` // unique within the legal entity
	Name          string      `json:"name"`
	AccountType   AccountType `json:"accountType"`
	ParentID      *string     `json:"parentID,omitempty"`
	IsActive      bool        `json:"isActive"`
	AuditFields
}

// AccountNode is an account with its children, as returned by the tree view.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}

// BuildAccountTree indexes accounts by id and attaches every account to its
// parent in a single pass. Accounts whose parent is missing from the input
// are returned as roots. Roots and children are ordered by code.
func BuildAccountTree(accounts []Account) []*AccountNode {
	arena := make(map[string]*AccountNode, len(accounts))
	for _, acc := range accounts {
		arena[acc.AccountID] = &AccountNode{Account: acc}
	}

	roots := make([]*AccountNode, 0)
	for _, acc := range accounts {
		node := arena[acc.AccountID]
		if acc.ParentID != nil {
			if parent, ok := arena[*acc.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	for _, node := range arena {
		sortNodes(node.Children)
	}
	sortNodes(roots)
	return roots
}

func sortNodes(nodes []*AccountNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Code < nodes[j].Code })
}

// ChartRow is one row of a chart-of-accounts dataset used for seeding.
type ChartRow struct {
	Code        string      `yaml:"code" json:"code"`
	Name        string      `yaml:"name" json:"name"`
	AccountType AccountType `yaml:"type" json:"accountType"`
	ParentCode  string      `yaml:"parent,omitempty" json:"parentCode,omitempty"`
}
