package services

// ServiceContainer holds all services of the engine.
type ServiceContainer struct {
	LegalEntity LegalEntitySvc
	Account     AccountSvcFacade
	Currency    CurrencySvcFacade
	Journal     JournalSvcFacade
	Ledger      LedgerSvc
	Reporting   ReportingSvc
	Deal        DealBridgeSvc
}
