package services

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	"github.com/nekorytaylor666/infobuh-sub000/internal/dto"
)

// DocumentGenerator renders the legal documents of a deal. It is an external
// collaborator; the bridge calls it after the accounting transaction commits.
type DocumentGenerator interface {
	GenerateDealDocument(ctx context.Context, deal domain.Deal, entry *domain.JournalEntry) (*domain.DocumentRef, error)
}

// DealBridgeSvc links deals to automatically generated accounting entries
type DealBridgeSvc interface {
	// CreateDealWithAccounting creates a deal and its invoice entry.
	CreateDealWithAccounting(ctx context.Context, req dto.CreateDealRequest, creatorUserID string) (*domain.BridgeResult, error)

	// RecordPayment books money received on a deal.
	RecordPayment(ctx context.Context, dealID string, req dto.RecordPaymentRequest, userID string) (*domain.BridgeResult, error)

	// RecordExpensePayment books money paid on a deal.
	RecordExpensePayment(ctx context.Context, dealID string, req dto.RecordPaymentRequest, userID string) (*domain.BridgeResult, error)

	// RecordAccrual books an adjustment entry for a deal.
	RecordAccrual(ctx context.Context, dealID string, req dto.RecordAccrualRequest, userID string) (*domain.BridgeResult, error)

	// GetDeal retrieves a deal.
	GetDeal(ctx context.Context, dealID string) (*domain.Deal, error)

	// ListDealEntries lists the entries linked to a deal.
	ListDealEntries(ctx context.Context, dealID string) ([]domain.LinkedEntry, error)

	// GenerateReconciliationReport summarizes the deal's payment position.
	GenerateReconciliationReport(ctx context.Context, dealID string) (*domain.ReconciliationReport, error)
}
