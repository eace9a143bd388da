package repositories

import (
	"context"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// DealReader defines read operations for deals and their journal links
type DealReader interface {
	// FindDealByID retrieves a deal by its ID.
	FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error)

	// ListDealsByCounterparty lists deals of a legal entity that name the given
	// counter-party BIN and deal-pair reference.
	ListDealsByCounterparty(ctx context.Context, legalEntityID, receiverBIN, reference string) ([]domain.Deal, error)

	// ListDealLinks lists the journal links of a deal in creation order.
	ListDealLinks(ctx context.Context, dealID string) ([]domain.DealJournalEntryLink, error)
}

// DealWriter defines write operations for deals and their journal links
type DealWriter interface {
	// SaveDeal persists a new deal.
	SaveDeal(ctx context.Context, deal domain.Deal) error

	// FindDealForUpdate retrieves a deal and locks it until the surrounding transaction ends.
	FindDealForUpdate(ctx context.Context, dealID string) (*domain.Deal, error)

	// UpdateDealPayment stores PaidAmount, Status and the last-updated audit fields.
	UpdateDealPayment(ctx context.Context, deal domain.Deal) error

	// SaveDealLink links a journal entry to a deal.
	SaveDealLink(ctx context.Context, link domain.DealJournalEntryLink) error
}
