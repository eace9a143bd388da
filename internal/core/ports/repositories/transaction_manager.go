package repositories

import "context"

// TransactionManager runs units of work against the store. The callback
// receives a capability scoped to the transaction; it must not be retained
// after the callback returns.
//
// WithTx commits when fn returns nil and rolls back otherwise, so partial
// effects are never visible to other readers. WithReadTx gives a read-only
// view of a consistent snapshot.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error
	WithReadTx(ctx context.Context, fn func(ctx context.Context, tx TxReader) error) error
}

// TxReader is the read-only capability handed to WithReadTx callbacks.
type TxReader interface {
	LegalEntityReader
	AccountReader
	CurrencyReader
	JournalReader
	LedgerReader
	DealReader
}

// TxStore is the read-write capability handed to WithTx callbacks.
type TxStore interface {
	TxReader
	LegalEntityWriter
	AccountWriter
	CurrencyWriter
	JournalWriter
	LedgerWriter
	DealWriter
}
