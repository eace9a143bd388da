package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrState indicates that the operation is not allowed in the resource's current state.
var ErrState = errors.New("invalid state")

// ErrExternal indicates a failure in an external collaborator (e.g. document generation).
var ErrExternal = errors.New("external collaborator failure")

// ErrInternal indicates an unexpected failure, usually in persistence.
var ErrInternal = errors.New("internal error")

// Specific business errors. Each wraps one of the categories above so callers
// can match either the precise condition or the broad category with errors.Is.
var (
	ErrUnbalanced      = wrap(ErrValidation, "journal entry is not balanced")
	ErrLineSide        = wrap(ErrValidation, "journal line must have exactly one positive side")
	ErrMinLines        = wrap(ErrValidation, "journal entry must have at least two lines")
	ErrAmountOverflow  = wrap(ErrValidation, "amount overflows")
	ErrInvalidAmount   = wrap(ErrValidation, "amount must be positive")
	ErrCrossEntity     = wrap(ErrValidation, "account belongs to a different legal entity")
	ErrInactiveAccount = wrap(ErrValidation, "account is inactive")
	ErrAlreadyPosted   = wrap(ErrState, "journal entry is already posted")
	ErrNotDraft        = wrap(ErrState, "journal entry is not a draft")
	ErrBackdated       = wrap(ErrState, "entry date precedes the latest ledger row of an affected account")
	ErrOverpayment     = wrap(ErrState, "payment exceeds the remaining balance")
	ErrBaseCurrency    = wrap(ErrState, "a base currency is already defined")
)

type categorized struct {
	category error
	msg      string
}

func (e *categorized) Error() string { return e.msg }

func (e *categorized) Unwrap() error { return e.category }

func wrap(category error, msg string) error {
	return &categorized{category: category, msg: msg}
}
