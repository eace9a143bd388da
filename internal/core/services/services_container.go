package services

import (
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
	portssvc "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/services"
	"github.com/nekorytaylor666/infobuh-sub000/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. documents may be nil when no document generator is deployed.
func NewServiceContainer(cfg *config.Config, txm portsrepo.TransactionManager, documents portssvc.DocumentGenerator, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.LegalEntity = NewLegalEntityService(txm, options...)
	container.Account = NewAccountService(txm, options...)
	container.Currency = NewCurrencyService(txm, options...)
	container.Journal = NewJournalService(txm, options...)
	container.Ledger = NewLedgerService(txm, options...)
	container.Reporting = NewReportingService(txm, options...)

	// The bridge composes journal operations inside its own transactions.
	container.Deal = NewDealService(txm, container.Journal, cfg.Bridge, documents, options...)

	return container
}
