// Package memory provides an in-memory store used for development and tests.
// It implements the same transaction capability as the Postgres store.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/nekorytaylor666/infobuh-sub000/internal/core/domain"
	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
)

// state is one immutable version of the store's data. Writers work on a
// clone and publish it on commit; readers keep whichever version they saw.
type state struct {
	legalEntities map[string]domain.LegalEntity
	accounts      map[string]domain.Account
	currencies    map[string]domain.Currency
	entries       map[string]domain.JournalEntry
	deals         map[string]domain.Deal
	links         map[string][]domain.DealJournalEntryLink

	ledger          []domain.GeneralLedgerRow
	ledgerByAccount map[string][]int

	entrySeq  int64
	ledgerSeq int64
}

func newState() *state {
	return &state{
		legalEntities:   make(map[string]domain.LegalEntity),
		accounts:        make(map[string]domain.Account),
		currencies:      make(map[string]domain.Currency),
		entries:         make(map[string]domain.JournalEntry),
		deals:           make(map[string]domain.Deal),
		links:           make(map[string][]domain.DealJournalEntryLink),
		ledgerByAccount: make(map[string][]int),
	}
}

func (st *state) clone() *state {
	next := &state{
		legalEntities:   maps.Clone(st.legalEntities),
		accounts:        maps.Clone(st.accounts),
		currencies:      maps.Clone(st.currencies),
		entries:         maps.Clone(st.entries),
		deals:           maps.Clone(st.deals),
		links:           make(map[string][]domain.DealJournalEntryLink, len(st.links)),
		ledger:          slices.Clone(st.ledger),
		ledgerByAccount: make(map[string][]int, len(st.ledgerByAccount)),
		entrySeq:        st.entrySeq,
		ledgerSeq:       st.ledgerSeq,
	}
	for k, v := range st.links {
		next.links[k] = slices.Clone(v)
	}
	for k, v := range st.ledgerByAccount {
		next.ledgerByAccount[k] = slices.Clone(v)
	}
	return next
}

// Store is an in-memory implementation of the transaction manager.
// Write transactions are serialized; read transactions see the last
// committed version.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	current *state
}

var _ portsrepo.TransactionManager = (*Store)(nil)

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{current: newState()}
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// WithTx runs fn against a private copy of the data and publishes the copy
// only when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxStore) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	working := s.snapshot().clone()
	if err := fn(ctx, &txStore{txReader{st: working}}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = working
	s.mu.Unlock()
	return nil
}

// WithReadTx runs fn against the last committed version.
func (s *Store) WithReadTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxReader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &txReader{st: s.snapshot()})
}

type txReader struct {
	st *state
}

type txStore struct {
	txReader
}

var (
	_ portsrepo.TxReader = (*txReader)(nil)
	_ portsrepo.TxStore  = (*txStore)(nil)
)
