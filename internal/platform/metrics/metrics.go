package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookkeeping"

var (
	JournalEntriesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_entries_created_total",
		Help:      "Number of journal entries created as drafts",
	})
	JournalEntriesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_entries_posted_total",
		Help:      "Number of journal entries posted to the ledger",
	})
	JournalEntriesCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "journal_entries_cancelled_total",
		Help:      "Number of draft journal entries cancelled",
	})
	LedgerRowsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_rows_appended_total",
		Help:      "Number of general ledger rows written",
	})
	BridgeEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bridge_entries_total",
		Help:      "Deal bridge operations by entry type and outcome",
	}, []string{"entry_type", "outcome"})
	OverpaymentsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overpayments_rejected_total",
		Help:      "Number of deal payments rejected for exceeding the remaining balance",
	})
	DocumentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_generation_failures_total",
		Help:      "Number of failed deal document generations",
	})
)

// Bridge outcome labels.
const (
	OutcomeBooked  = "booked"
	OutcomeSkipped = "skipped"
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
