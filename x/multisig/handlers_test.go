package multisig

import (
	"context"
	"testing"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
	"github.com/iov-one/stronghold/store"
	"github.com/iov-one/stronghold/vaulttest"
	"github.com/iov-one/stronghold/x/cash"
	"github.com/iov-one/stronghold/x/dispatch"
	"github.com/iov-one/stronghold/x/ownership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture wires three owners with a threshold of two, a funded source
// account and a dispatcher with one benign target.
type fixture struct {
	db      stronghold.CacheableKVStore
	auth    *vaulttest.CtxAuth
	a, b, c stronghold.Condition
	source  stronghold.Address
	target  stronghold.Address
	ctrl    cash.Controller
	disp    *dispatch.Dispatcher
	owners  *ownership.Registry
	submit  stronghold.Handler
	approve stronghold.Handler
	revoke  stronghold.Handler
	execute stronghold.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		db:     store.MemStore(),
		auth:   &vaulttest.CtxAuth{Key: "auth"},
		a:      vaulttest.NewCondition(),
		b:      vaulttest.NewCondition(),
		c:      vaulttest.NewCondition(),
		source: vaulttest.NewCondition().Address(),
		target: vaulttest.NewCondition().Address(),
		ctrl:   cash.NewController(),
	}
	f.disp = dispatch.NewDispatcher(f.ctrl)
	f.disp.RegisterTarget(f.target, dispatch.TargetFunc(
		func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
			return []byte("ok"), nil
		}))
	require.NoError(t, f.ctrl.IssueCoins(f.db, f.source, 1000))

	owners, err := ownership.NewRegistry([]stronghold.Address{
		f.a.Address(), f.b.Address(), f.c.Address(),
	}, 2)
	require.NoError(t, err)
	f.owners = owners

	f.submit = &submitHandler{auth: f.auth, owners: owners}
	f.approve = &approveHandler{auth: f.auth, owners: owners}
	f.revoke = &revokeHandler{auth: f.auth, owners: owners}
	f.execute = &executeHandler{owners: owners, disp: f.disp, source: f.source}
	return f
}

func (f *fixture) as(cond stronghold.Condition) stronghold.Context {
	return f.auth.SetConditions(context.Background(), cond)
}

// submitTx appends a default transaction and returns its index.
func (f *fixture) submitTx(t *testing.T) uint64 {
	t.Helper()
	tx := &vaulttest.Tx{Msg: &SubmitMsg{Destination: f.target, Amount: 10, Payload: []byte("raw")}}
	res, err := f.submit.Deliver(f.as(f.a), f.db, tx)
	require.NoError(t, err)
	idx, err := TransactionCount(f.db)
	require.NoError(t, err)
	require.Equal(t, encodeIndex(idx-1), res.Data)
	return idx - 1
}

func TestSubmitAppendsInOrder(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, uint64(0), f.submitTx(t))
	assert.Equal(t, uint64(1), f.submitTx(t))
	assert.Equal(t, uint64(2), f.submitTx(t))

	count, err := TransactionCount(f.db)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	tx, err := GetTransaction(f.db, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte(f.target), tx.Destination)
	assert.Equal(t, int64(10), tx.Amount)
	assert.False(t, tx.Executed)
}

func TestSubmitRequiresOwner(t *testing.T) {
	f := newFixture(t)

	tx := &vaulttest.Tx{Msg: &SubmitMsg{Destination: f.target, Amount: 10}}
	_, err := f.submit.Deliver(f.as(vaulttest.NewCondition()), f.db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestApprovalLifecycle(t *testing.T) {
	f := newFixture(t)
	idx := f.submitTx(t)

	approveTx := &vaulttest.Tx{Msg: &ApproveMsg{TxID: idx}}

	_, err := f.approve.Deliver(f.as(f.a), f.db, approveTx)
	require.NoError(t, err)

	// double approval by the same owner fails
	_, err = f.approve.Deliver(f.as(f.a), f.db, approveTx)
	assert.True(t, errors.ErrDuplicate.Is(err))

	count, err := ApprovalCount(f.db, idx, f.owners)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count)

	// revoke and re-approve counts exactly once
	revokeTx := &vaulttest.Tx{Msg: &RevokeMsg{TxID: idx}}
	_, err = f.revoke.Deliver(f.as(f.a), f.db, revokeTx)
	require.NoError(t, err)
	count, err = ApprovalCount(f.db, idx, f.owners)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), count)

	_, err = f.approve.Deliver(f.as(f.a), f.db, approveTx)
	require.NoError(t, err)
	count, err = ApprovalCount(f.db, idx, f.owners)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count)
}

func TestApproveUnknownTransaction(t *testing.T) {
	f := newFixture(t)

	approveTx := &vaulttest.Tx{Msg: &ApproveMsg{TxID: 42}}
	_, err := f.approve.Deliver(f.as(f.a), f.db, approveTx)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestRevokeWithoutApproval(t *testing.T) {
	f := newFixture(t)
	idx := f.submitTx(t)

	revokeTx := &vaulttest.Tx{Msg: &RevokeMsg{TxID: idx}}
	_, err := f.revoke.Deliver(f.as(f.a), f.db, revokeTx)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestExecuteThreshold(t *testing.T) {
	f := newFixture(t)
	idx := f.submitTx(t)
	executeTx := &vaulttest.Tx{Msg: &ExecuteMsg{TxID: idx}}
	stranger := vaulttest.NewCondition()

	// below threshold
	_, err := f.approve.Deliver(f.as(f.a), f.db, &vaulttest.Tx{Msg: &ApproveMsg{TxID: idx}})
	require.NoError(t, err)
	_, err = f.execute.Deliver(f.as(stranger), f.db, executeTx)
	assert.True(t, ErrInsufficientApprovals.Is(err))

	// exactly at threshold, executable by anyone
	_, err = f.approve.Deliver(f.as(f.b), f.db, &vaulttest.Tx{Msg: &ApproveMsg{TxID: idx}})
	require.NoError(t, err)
	res, err := f.execute.Deliver(f.as(stranger), f.db, executeTx)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), res.Data)

	bal, err := f.ctrl.Balance(f.db, f.target)
	require.NoError(t, err)
	assert.Equal(t, int64(10), bal)

	// a transaction cannot be executed twice
	_, err = f.execute.Deliver(f.as(stranger), f.db, executeTx)
	assert.True(t, errors.ErrImmutable.Is(err))

	// late approval on an executed transaction fails as well
	_, err = f.approve.Deliver(f.as(f.c), f.db, &vaulttest.Tx{Msg: &ApproveMsg{TxID: idx}})
	assert.True(t, errors.ErrImmutable.Is(err))

	// and so does revocation
	_, err = f.revoke.Deliver(f.as(f.a), f.db, &vaulttest.Tx{Msg: &RevokeMsg{TxID: idx}})
	assert.True(t, errors.ErrImmutable.Is(err))
}

func TestExecuteCallFailed(t *testing.T) {
	f := newFixture(t)

	badTarget := vaulttest.NewCondition().Address()
	f.disp.RegisterTarget(badTarget, dispatch.TargetFunc(
		func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
			return nil, errors.Wrap(errors.ErrState, "refusing")
		}))

	tx := &vaulttest.Tx{Msg: &SubmitMsg{Destination: badTarget, Amount: 10}}
	_, err := f.submit.Deliver(f.as(f.a), f.db, tx)
	require.NoError(t, err)

	_, err = f.approve.Deliver(f.as(f.a), f.db, &vaulttest.Tx{Msg: &ApproveMsg{TxID: 0}})
	require.NoError(t, err)
	_, err = f.approve.Deliver(f.as(f.b), f.db, &vaulttest.Tx{Msg: &ApproveMsg{TxID: 0}})
	require.NoError(t, err)

	_, err = f.execute.Deliver(f.as(f.c), f.db, &vaulttest.Tx{Msg: &ExecuteMsg{TxID: 0}})
	assert.True(t, dispatch.ErrCallFailed.Is(err))

	// the failed call itself must not move any funds
	bal, err := f.ctrl.Balance(f.db, badTarget)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bal)
}

func TestExecuteGuarded(t *testing.T) {
	f := newFixture(t)
	idx := f.submitTx(t)

	_, err := f.approve.Deliver(f.as(f.a), f.db, &vaulttest.Tx{Msg: &ApproveMsg{TxID: idx}})
	require.NoError(t, err)
	_, err = f.approve.Deliver(f.as(f.b), f.db, &vaulttest.Tx{Msg: &ApproveMsg{TxID: idx}})
	require.NoError(t, err)

	release, err := f.disp.Guard().Acquire()
	require.NoError(t, err)
	defer release()

	_, err = f.execute.Deliver(f.as(f.c), f.db, &vaulttest.Tx{Msg: &ExecuteMsg{TxID: idx}})
	assert.True(t, dispatch.ErrReentry.Is(err))
}
