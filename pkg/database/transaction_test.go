package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgxTxManager_ReadWriteCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectExec(`DELETE FROM books`).WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	tm := NewTxManager(mock)
	err = tm.ReadWrite(context.Background(), func(ctx context.Context) error {
		q := QuerierFromCtx(ctx, mock)
		_, err := q.Exec(ctx, `DELETE FROM books WHERE id = $1`, int64(1))
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxTxManager_ReadOnlyRollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	sentinel := errors.New("boom")
	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	mock.ExpectRollback()

	tm := NewTxManager(mock)
	err = tm.ReadOnly(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxTxManager_RollbackFailureKeepsOriginalError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	notFound := errors.New("book not found")
	connLost := errors.New("conn lost")
	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectRollback().WillReturnError(connLost)

	tm := NewTxManager(mock)
	err = tm.ReadWrite(context.Background(), func(ctx context.Context) error {
		return notFound
	})

	assert.ErrorIs(t, err, notFound)
	assert.ErrorIs(t, err, connLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxTxManager_NestedCallReusesTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectCommit()

	tm := NewTxManager(mock)
	calls := 0
	err = tm.ReadWrite(context.Background(), func(ctx context.Context) error {
		return tm.ReadOnly(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuerierFromCtx_FallsBackWithoutTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Equal(t, Querier(mock), QuerierFromCtx(context.Background(), mock))
}

func TestNoopTxManager(t *testing.T) {
	var tm TxManager = NoopTxManager{}
	ran := false
	require.NoError(t, tm.ReadWrite(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}
