package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextCarriesTransaction(t *testing.T) {
	ctx := context.Background()

	_, ok := From(ctx)
	assert.False(t, ok)
	assert.Equal(t, ctx, WithTx(ctx, nil))

	db := &sql.DB{}
	assert.Same(t, db, Conn(ctx, db))

	tx := &sql.Tx{}
	txCtx := WithTx(ctx, tx)
	got, ok := From(txCtx)
	require.True(t, ok)
	assert.Same(t, tx, got)
	assert.Same(t, tx, Conn(txCtx, db))
}

func TestRunInTxJoinsOuterTransaction(t *testing.T) {
	// A nil db proves no new transaction is begun.
	runner := NewSQLRunner(nil)
	outer := WithTx(context.Background(), &sql.Tx{})

	called := false
	err := runner.RunInTx(outer, func(ctx context.Context) error {
		called = true
		assert.Equal(t, outer, ctx)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}
