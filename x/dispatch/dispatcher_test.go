package dispatch

import (
	"context"
	"testing"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
	"github.com/iov-one/stronghold/store"
	"github.com/iov-one/stronghold/vaulttest"
	"github.com/iov-one/stronghold/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	var g Guard

	release, err := g.Acquire()
	require.NoError(t, err)

	_, err = g.Acquire()
	assert.True(t, ErrReentry.Is(err))

	release()
	release, err = g.Acquire()
	require.NoError(t, err)
	release()
}

func TestDispatchMovesValue(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController()
	d := NewDispatcher(ctrl)

	source := vaulttest.NewCondition().Address()
	target := vaulttest.NewCondition().Address()
	require.NoError(t, ctrl.IssueCoins(db, source, 100))

	var gotValue int64
	var gotPayload []byte
	d.RegisterTarget(target, TargetFunc(func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
		gotValue = value
		gotPayload = payload
		return []byte("pong"), nil
	}))

	res, err := d.Dispatch(context.Background(), db, source, target, 30, []byte("ping"))
	require.NoError(t, err)
	assert.Equal(t, []byte("pong"), res)
	assert.Equal(t, int64(30), gotValue)
	assert.Equal(t, []byte("ping"), gotPayload)

	bal, err := ctrl.Balance(db, source)
	require.NoError(t, err)
	assert.Equal(t, int64(70), bal)
	bal, err = ctrl.Balance(db, target)
	require.NoError(t, err)
	assert.Equal(t, int64(30), bal)
}

func TestDispatchFailureRollsBack(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController()
	d := NewDispatcher(ctrl)

	source := vaulttest.NewCondition().Address()
	target := vaulttest.NewCondition().Address()
	require.NoError(t, ctrl.IssueCoins(db, source, 100))

	d.RegisterTarget(target, TargetFunc(func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
		return nil, errors.Wrap(errors.ErrState, "refusing")
	}))

	_, err := d.Dispatch(context.Background(), db, source, target, 30, nil)
	require.Error(t, err)

	bal, err := ctrl.Balance(db, source)
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal)
	bal, err = ctrl.Balance(db, target)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bal)
}

func TestDispatchRecoversPanic(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController()
	d := NewDispatcher(ctrl)

	source := vaulttest.NewCondition().Address()
	target := vaulttest.NewCondition().Address()
	require.NoError(t, ctrl.IssueCoins(db, source, 100))

	d.RegisterTarget(target, TargetFunc(func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
		panic("boom")
	}))

	_, err := d.Dispatch(context.Background(), db, source, target, 30, nil)
	require.Error(t, err)
	assert.True(t, errors.ErrPanic.Is(err))

	bal, err := ctrl.Balance(db, source)
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal)
}

func TestDispatchUnknownTarget(t *testing.T) {
	db := store.MemStore()
	d := NewDispatcher(cash.NewController())

	source := vaulttest.NewCondition().Address()
	target := vaulttest.NewCondition().Address()

	_, err := d.Dispatch(context.Background(), db, source, target, 0, nil)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestDispatchInsufficientFunds(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController()
	d := NewDispatcher(ctrl)

	source := vaulttest.NewCondition().Address()
	target := vaulttest.NewCondition().Address()
	d.RegisterTarget(target, TargetFunc(func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
		return nil, nil
	}))

	_, err := d.Dispatch(context.Background(), db, source, target, 10, nil)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
}
