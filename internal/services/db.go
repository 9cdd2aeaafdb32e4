package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Row and Rows mirror the pgx scanning surface so services can be tested
// against hand-rolled fakes.
type Row interface {
	Scan(dest ...any) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

// CommandTag exposes the affected-row count of an Exec. Transition guards
// rely on it for compare-and-set updates.
type CommandTag interface {
	RowsAffected() int64
}

// DBConn is the query surface shared by pools and transactions.
type DBConn interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// DB adds transaction support on top of DBConn.
type DB interface {
	DBConn
	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	DBConn
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// PoolAdapter wraps a pgxpool.Pool behind the DB interface.
type PoolAdapter struct {
	pool *pgxpool.Pool
}

func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{pool: pool}
}

func (a *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	tag, err := a.pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (a *PoolAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.pool.QueryRow(ctx, sql, args...)
}

func (a *PoolAdapter) Begin(ctx context.Context) (Tx, error) {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &txAdapter{tx: tx}, nil
}

type txAdapter struct {
	tx pgx.Tx
}

func (a *txAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	tag, err := a.tx.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (a *txAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := a.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *txAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.tx.QueryRow(ctx, sql, args...)
}

func (a *txAdapter) Commit(ctx context.Context) error {
	return a.tx.Commit(ctx)
}

func (a *txAdapter) Rollback(ctx context.Context) error {
	return a.tx.Rollback(ctx)
}
