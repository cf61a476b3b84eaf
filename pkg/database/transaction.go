package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// WithTransaction function:
//     Begin transaction (read-only hoặc read-write)
//     Đặt tx vào context để repository lấy ra qua QuerierFromCtx
//     Defer rollback - tự động rollback nếu fn return error hoặc panic
//     Commit nếu không có error

// Querier là interface chung của *pgxpool.Pool và pgx.Tx
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Beginner starts transactions. *pgxpool.Pool satisfies it.
type Beginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxFunc là function type được execute trong transaction
type TxFunc func(ctx context.Context) error

// TxManager runs units of work in a transaction.
type TxManager interface {
	// ReadOnly runs fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn TxFunc) error
	// ReadWrite runs fn in a read-write transaction that commits atomically.
	ReadWrite(ctx context.Context, fn TxFunc) error
}

type txCtxKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// QuerierFromCtx trả về tx trong context nếu có, ngược lại trả về fallback (pool)
func QuerierFromCtx(ctx context.Context, fallback Querier) Querier {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}

// PgxTxManager is the PostgreSQL TxManager.
type PgxTxManager struct {
	db Beginner
}

func NewTxManager(db Beginner) *PgxTxManager {
	return &PgxTxManager{db: db}
}

func (m *PgxTxManager) ReadOnly(ctx context.Context, fn TxFunc) error {
	return m.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (m *PgxTxManager) ReadWrite(ctx context.Context, fn TxFunc) error {
	return m.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadWrite}, fn)
}

func (m *PgxTxManager) run(ctx context.Context, opts pgx.TxOptions, fn TxFunc) (err error) {
	// Nested call: reuse transaction đang có
	if _, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			// Có panic → rollback
			_ = tx.Rollback(ctx)
			panic(p) // Re-throw panic
		}
	}()

	if err = fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			return fmt.Errorf("rollback failed: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// NoopTxManager runs fn directly. Used with the in-memory stores, which are
// atomic per operation.
type NoopTxManager struct{}

func (NoopTxManager) ReadOnly(ctx context.Context, fn TxFunc) error  { return fn(ctx) }
func (NoopTxManager) ReadWrite(ctx context.Context, fn TxFunc) error { return fn(ctx) }
