package domain

import "time"

// DealStatus is the payment state of a deal. The only transition is
// active -> completed, taken exactly when PaidAmount reaches TotalAmount.
type DealStatus string

const (
	DealActive    DealStatus = "active"
	DealCompleted DealStatus = "completed"
)

// DealRole says which side of the deal the owning legal entity is on.
type DealRole string

const (
	// DealRoleSeller owns the receivable: the counter-party pays us.
	DealRoleSeller DealRole = "seller"
	// DealRoleBuyer owns the payable: we pay the counter-party.
	DealRoleBuyer DealRole = "buyer"
)

// IsValid reports whether r is a known deal role.
func (r DealRole) IsValid() bool {
	return r == DealRoleSeller || r == DealRoleBuyer
}

// Deal is an external business transaction between the owning legal entity
// and a counter-party identified by ReceiverBIN.
type Deal struct {
	DealID        string     `json:"dealID"`
	LegalEntityID string     `json:"legalEntityID"`
	Role          DealRole   `json:"role"`
	ReceiverBIN   string     `json:"receiverBin"`
	Reference     string     `json:"reference"` // deal-pair reference shared by both counter-parties
	Title         string     `json:"title"`
	CurrencyID    string     `json:"currencyID"`
	TotalAmount   int64      `json:"totalAmount"`
	PaidAmount    int64      `json:"paidAmount"`
	Status        DealStatus `json:"status"`
	AuditFields
}

// RemainingBalance is what is still owed on the deal.
func (d Deal) RemainingBalance() int64 {
	return d.TotalAmount - d.PaidAmount
}

// ApplyPayment adds amount to PaidAmount and derives the status. It does not
// validate the amount; callers guard against overpayment first.
func (d *Deal) ApplyPayment(amount int64, userID string, now time.Time) {
	d.PaidAmount += amount
	if d.PaidAmount == d.TotalAmount {
		d.Status = DealCompleted
	} else {
		d.Status = DealActive
	}
	d.LastUpdatedAt = now
	d.LastUpdatedBy = userID
}

// EntryType records why a journal entry is linked to a deal.
type EntryType string

const (
	EntryTypeInvoice    EntryType = "invoice"
	EntryTypePayment    EntryType = "payment"
	EntryTypeAdjustment EntryType = "adjustment"
)

// DealJournalEntryLink joins deals and journal entries.
type DealJournalEntryLink struct {
	DealID         string    `json:"dealID"`
	JournalEntryID string    `json:"journalEntryID"`
	EntryType      EntryType `json:"entryType"`
	CreatedAt      time.Time `json:"createdAt"`
}

// LinkedEntry is a link together with the entry it points to.
type LinkedEntry struct {
	Link  DealJournalEntryLink `json:"link"`
	Entry JournalEntry         `json:"entry"`
}

// SkipReasonMirrorEntry is reported when the counter-party already booked
// the same economic event.
const SkipReasonMirrorEntry = "mirror_entry_exists"

// BridgeResult is the outcome of a bridge operation. When Skipped is true no
// journal entry was created and SkipReason explains why.
type BridgeResult struct {
	Deal          Deal          `json:"deal"`
	Entry         *JournalEntry `json:"entry,omitempty"`
	Skipped       bool          `json:"skipped"`
	SkipReason    string        `json:"skipReason,omitempty"`
	MirrorEntryID string        `json:"mirrorEntryID,omitempty"`
	Document      *DocumentRef  `json:"document,omitempty"`
}

// DocumentRef points to a document produced by the document generator.
type DocumentRef struct {
	DocumentID  string `json:"documentID"`
	StoragePath string `json:"storagePath"`
}

// Reconciliation flags.
const (
	FlagOverpayment    = "overpayment"
	FlagMissingPayment = "missing_payment"
)

// ReconciliationReport summarizes the payment position of a deal.
type ReconciliationReport struct {
	DealID           string     `json:"dealID"`
	Status           DealStatus `json:"status"`
	TotalAmount      int64      `json:"totalAmount"`
	PaidAmount       int64      `json:"paidAmount"`
	RemainingBalance int64      `json:"remainingBalance"`
	IsBalanced       bool       `json:"isBalanced"`
	Flags            []string   `json:"flags"`
	InvoicedAmount   int64      `json:"invoicedAmount"`
	PaymentsBooked   int64      `json:"paymentsBooked"`
	DraftEntries     int        `json:"draftEntries"`
	PostedEntries    int        `json:"postedEntries"`
	CancelledEntries int        `json:"cancelledEntries"`
}
