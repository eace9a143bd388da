package dto

import "github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code        string             `json:"code" validate:"required,max=20"`
	Name        string             `json:"name" validate:"required,max=255"`
	AccountType domain.AccountType `json:"accountType" validate:"required,oneof=asset liability equity revenue expense"`
	ParentID    *string            `json:"parentID" validate:"omitempty,min=1"`
}

// SeedChartRequest defines a chart-of-accounts seeding run.
type SeedChartRequest struct {
	Rows      []domain.ChartRow `json:"rows" validate:"required,min=1,dive"`
	CreatedBy string            `json:"createdBy" validate:"required"`
}

// SeedChartResult reports what a seeding run did.
type SeedChartResult struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
	Passes   int `json:"passes"`
}
