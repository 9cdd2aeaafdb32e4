package services

import (
	"context"
	"fmt"
	"reflect"
)

// fakeDB implements DB with pluggable behavior per method.
type fakeDB struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)
	BeginFunc    func(ctx context.Context) (Tx, error)
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if db.QueryFunc == nil {
		panic("unexpected Query: " + sql)
	}
	return db.QueryFunc(ctx, sql, args...)
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if db.QueryRowFunc == nil {
		panic("unexpected QueryRow: " + sql)
	}
	return db.QueryRowFunc(ctx, sql, args...)
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	if db.ExecFunc == nil {
		panic("unexpected Exec: " + sql)
	}
	return db.ExecFunc(ctx, sql, args...)
}

func (db *fakeDB) Begin(ctx context.Context) (Tx, error) {
	if db.BeginFunc == nil {
		panic("unexpected Begin")
	}
	return db.BeginFunc(ctx)
}

// fakeTx implements Tx and records commit/rollback calls.
type fakeTx struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)

	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if tx.QueryFunc == nil {
		panic("unexpected tx Query: " + sql)
	}
	return tx.QueryFunc(ctx, sql, args...)
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if tx.QueryRowFunc == nil {
		panic("unexpected tx QueryRow: " + sql)
	}
	return tx.QueryRowFunc(ctx, sql, args...)
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	if tx.ExecFunc == nil {
		panic("unexpected tx Exec: " + sql)
	}
	return tx.ExecFunc(ctx, sql, args...)
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	tx.rolledBack = true
	return nil
}

type fakeRow struct {
	scanFunc func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	return r.scanFunc(dest...)
}

// rowFromValues builds a Row that scans the given values positionally.
func rowFromValues(values ...any) fakeRow {
	return fakeRow{scanFunc: func(dest ...any) error {
		return scanInto(dest, values)
	}}
}

type fakeRows struct {
	rows   [][]any
	idx    int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.idx < len(r.rows) {
		r.idx++
		return true
	}
	return false
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanInto(dest, r.rows[r.idx-1])
}

func (r *fakeRows) Close() {
	r.closed = true
}

func (r *fakeRows) Err() error {
	return r.err
}

type fakeCommandTag struct {
	rowsAffected int64
}

func (t fakeCommandTag) RowsAffected() int64 {
	return t.rowsAffected
}

func scanInto(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, value := range values {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("scan: destination %d is not a pointer", i)
		}
		elem := dv.Elem()
		if value == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		sv := reflect.ValueOf(value)
		switch {
		case sv.Type().AssignableTo(elem.Type()):
			elem.Set(sv)
		case sv.Type().ConvertibleTo(elem.Type()):
			elem.Set(sv.Convert(elem.Type()))
		default:
			return fmt.Errorf("scan: cannot assign %T to %s", value, elem.Type())
		}
	}
	return nil
}
