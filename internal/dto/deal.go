package dto

import (
	"time"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
)

// CreateDealRequest defines a new deal and the data for its invoice entry.
// Amounts are in smallest currency units.
type CreateDealRequest struct {
	LegalEntityID string          `json:"legalEntityID" validate:"required"`
	Role          domain.DealRole `json:"role" validate:"required,oneof=seller buyer"`
	ReceiverBIN   string          `json:"receiverBin" validate:"required,len=12,numeric"`
	Reference     string          `json:"reference" validate:"required,max=100"`
	Title         string          `json:"title" validate:"required,max=255"`
	CurrencyID    string          `json:"currencyID" validate:"required"`
	TotalAmount   int64           `json:"totalAmount" validate:"gt=0"`
	EntryDate     time.Time       `json:"entryDate" validate:"required"`
	AutoPost      bool            `json:"autoPost"`
}

// RecordPaymentRequest defines a payment against a deal.
type RecordPaymentRequest struct {
	Amount      int64     `json:"amount" validate:"gt=0"`
	PaymentDate time.Time `json:"paymentDate" validate:"required"`
	Description string    `json:"description" validate:"max=500"`
	AutoPost    bool      `json:"autoPost"`
}

// RecordAccrualRequest defines an accrual or adjustment entry for a deal
// between two explicitly named accounts.
type RecordAccrualRequest struct {
	Amount            int64     `json:"amount" validate:"gt=0"`
	DebitAccountCode  string    `json:"debitAccountCode" validate:"required"`
	CreditAccountCode string    `json:"creditAccountCode" validate:"required,nefield=DebitAccountCode"`
	EntryDate         time.Time `json:"entryDate" validate:"required"`
	Description       string    `json:"description" validate:"max=500"`
	AutoPost          bool      `json:"autoPost"`
}
