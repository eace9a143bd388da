package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/nekorytaylor666/infobuh-sub000/internal/core/ports/repositories"
)

// PgxStore runs units of work in PostgreSQL transactions. Write transactions
// use READ COMMITTED together with row locks; read transactions use a
// read-only REPEATABLE READ snapshot so reports see one consistent state.
type PgxStore struct {
	BaseRepository
}

// NewStore creates the PostgreSQL-backed transaction manager.
func NewStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionManager = (*PgxStore)(nil)

func (s *PgxStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxStore) error) error {
	tx, err := s.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer s.Rollback(ctx, tx) //nolint:errcheck

	if err := fn(ctx, &pgxTxRepository{tx: tx}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

func (s *PgxStore) WithReadTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxReader) error) error {
	tx, err := s.Begin(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return err
	}
	defer s.Rollback(ctx, tx) //nolint:errcheck

	if err := fn(ctx, &pgxTxRepository{tx: tx}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

// pgxTxRepository implements every repository port on top of one pgx.Tx.
type pgxTxRepository struct {
	tx pgx.Tx
}

var _ portsrepo.TxStore = (*pgxTxRepository)(nil)
