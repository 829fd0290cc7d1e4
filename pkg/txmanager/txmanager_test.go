package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	opts     *sql.TxOptions
	begins   int
	beginErr error
}

func (f *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begins++
	f.opts = opts
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

func TestDoSerializable_Commits(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)
	boom := errors.New("boom")

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.True(t, beginner.tx.rolledBack)
	assert.False(t, beginner.tx.committed)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, beginner.begins)
}

func TestDo_BeginAndCommitErrors(t *testing.T) {
	mgr := NewTransactionManager(&fakeBeginner{beginErr: errors.New("no connection")})
	err := mgr.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)

	mgr = NewTransactionManager(&fakeBeginner{tx: &fakeTx{commitErr: errors.New("serialization failure")}})
	err = mgr.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCommitTx)
}

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies"}
}

func TestDoSerializable_RetriesSerializationFailures(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)
	calls := 0

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < DefaultSerializableAttempts {
			return fmt.Errorf("insert: %w", serializationFailure())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, DefaultSerializableAttempts, calls)
	assert.Equal(t, DefaultSerializableAttempts, beginner.begins)
	assert.True(t, beginner.tx.committed)
}

func TestDoSerializable_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Run("statement failure", func(t *testing.T) {
		beginner := &fakeBeginner{tx: &fakeTx{}}
		mgr := NewTransactionManager(beginner)

		err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
			return serializationFailure()
		})

		assert.ErrorIs(t, err, ErrSerialization)
		assert.True(t, IsSerializationFailure(err))
		assert.Equal(t, DefaultSerializableAttempts, beginner.begins)
		assert.True(t, beginner.tx.rolledBack)
	})

	t.Run("commit failure", func(t *testing.T) {
		beginner := &fakeBeginner{tx: &fakeTx{commitErr: serializationFailure()}}
		mgr := NewTransactionManager(beginner)

		err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

		assert.ErrorIs(t, err, ErrSerialization)
		assert.ErrorIs(t, err, ErrCommitTx)
		assert.Equal(t, DefaultSerializableAttempts, beginner.begins)
	})
}

func TestDoSerializable_DoesNotRetryOtherErrors(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)
	boom := errors.New("boom")

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrSerialization))
	assert.Equal(t, 1, beginner.begins)
}

func TestDoSerializable_NestedDoesNotRetry(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)
	inner := 0

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, func(ctx context.Context) error {
			inner++
			return serializationFailure()
		})
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.Equal(t, 1, inner)
	assert.Equal(t, 1, beginner.begins)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(serializationFailure()))
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40P01"}))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("40001")))
}
