package vault

import (
	"context"
	"fmt"
	"testing"
	"time"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
	"github.com/iov-one/stronghold/store"
	"github.com/iov-one/stronghold/vaulttest"
	"github.com/iov-one/stronghold/x/dispatch"
	"github.com/iov-one/stronghold/x/ownership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(now int64) stronghold.Context {
	return stronghold.WithBlockTime(context.Background(), time.Unix(now, 0))
}

func newVault(t *testing.T, ownerConds []stronghold.Condition, threshold uint32) *Vault {
	t.Helper()

	addrs := make([]stronghold.Address, len(ownerConds))
	for i, c := range ownerConds {
		addrs[i] = c.Address()
	}
	owners, err := ownership.NewRegistry(addrs, threshold)
	require.NoError(t, err)
	return New(store.MemStore(), owners, nil)
}

func TestTimelockEndToEnd(t *testing.T) {
	const now = 20000
	owner := vaulttest.NewCondition()
	v := newVault(t, []stronghold.Condition{owner}, 1)

	target := vaulttest.NewCondition().Address()
	v.RegisterTarget(target, dispatch.TargetFunc(
		func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
			return nil, nil
		}))

	_, err := v.Deposit(at(now), vaulttest.NewCondition().Address(), 100)
	require.NoError(t, err)

	// queue target=X, value=5, no func sig, no data, due in 50
	fingerprint, err := v.QueueTimelock(at(now), owner, target, 5, "", nil, now+50)
	require.NoError(t, err)
	assert.Equal(t, v.TxID(target, 5, "", nil, now+50), fingerprint)

	queued, err := v.TimelockQueued(fingerprint)
	require.NoError(t, err)
	assert.True(t, queued)

	// execution at the due time dispatches 5 units and clears the flag
	_, err = v.ExecuteTimelock(at(now+50), owner, target, 5, "", nil, now+50)
	require.NoError(t, err)

	bal, err := v.Balance(target)
	require.NoError(t, err)
	assert.Equal(t, int64(5), bal)

	queued, err = v.TimelockQueued(fingerprint)
	require.NoError(t, err)
	assert.False(t, queued)

	// identical parameters can be queued again once the flag is cleared
	_, err = v.QueueTimelock(at(now+40), owner, target, 5, "", nil, now+50)
	assert.NoError(t, err)
}

func TestMultisigEndToEnd(t *testing.T) {
	a := vaulttest.NewCondition()
	b := vaulttest.NewCondition()
	c := vaulttest.NewCondition()
	v := newVault(t, []stronghold.Condition{a, b, c}, 2)

	target := vaulttest.NewCondition().Address()
	v.RegisterTarget(target, dispatch.TargetFunc(
		func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
			return nil, nil
		}))
	_, err := v.Deposit(at(1), vaulttest.NewCondition().Address(), 100)
	require.NoError(t, err)

	txID, err := v.SubmitTransaction(at(1), a, target, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), txID)

	require.NoError(t, v.ApproveTransaction(at(2), a, txID))
	require.NoError(t, v.ApproveTransaction(at(3), b, txID))

	count, err := v.ApprovalCount(txID)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), count)

	_, err = v.ExecuteTransaction(at(4), c, txID)
	require.NoError(t, err)

	bal, err := v.Balance(target)
	require.NoError(t, err)
	assert.Equal(t, int64(10), bal)

	tx, err := v.Transaction(txID)
	require.NoError(t, err)
	assert.True(t, tx.Executed)

	// a late approval on the executed transaction fails
	err = v.ApproveTransaction(at(5), c, txID)
	assert.True(t, errors.ErrImmutable.Is(err))
}

func TestStreamEndToEnd(t *testing.T) {
	owner := vaulttest.NewCondition()
	v := newVault(t, []stronghold.Condition{owner}, 1)

	target := vaulttest.NewCondition().Address()
	v.RegisterTarget(target, dispatch.TargetFunc(
		func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
			return nil, nil
		}))
	_, err := v.Deposit(at(1), vaulttest.NewCondition().Address(), 1000)
	require.NoError(t, err)

	_, err = v.QueueStream(at(100), owner, target, 100, "", nil, 10000)
	require.NoError(t, err)

	// halfway to the target time, half the value is released
	_, err = v.ExecuteStream(at(5000), owner, target, 100, "", nil, 10000)
	require.NoError(t, err)

	bal, err := v.Balance(target)
	require.NoError(t, err)
	assert.Equal(t, int64(50), bal)
}

func TestFailedExecutionLeavesNoTrace(t *testing.T) {
	const now = 20000
	owner := vaulttest.NewCondition()
	v := newVault(t, []stronghold.Condition{owner}, 1)

	target := vaulttest.NewCondition().Address()
	v.RegisterTarget(target, dispatch.TargetFunc(
		func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
			return nil, errors.Wrap(errors.ErrState, "refusing")
		}))
	_, err := v.Deposit(at(now), vaulttest.NewCondition().Address(), 100)
	require.NoError(t, err)

	fingerprint, err := v.QueueTimelock(at(now), owner, target, 5, "", nil, now+50)
	require.NoError(t, err)

	_, err = v.ExecuteTimelock(at(now+50), owner, target, 5, "", nil, now+50)
	assert.True(t, dispatch.ErrCallFailed.Is(err))

	// the whole operation was rolled back, the entry is still queued and
	// no funds moved
	queued, err := v.TimelockQueued(fingerprint)
	require.NoError(t, err)
	assert.True(t, queued)

	bal, err := v.Balance(v.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal)

	// a later execution within the grace period succeeds once the target
	// cooperates... here it keeps failing, so cancel instead
	require.NoError(t, v.CancelTimelock(at(now+60), owner, fingerprint))
}

func TestReentrancyBlockedAcrossModes(t *testing.T) {
	const now = 20000
	owner := vaulttest.NewCondition()
	v := newVault(t, []stronghold.Condition{owner}, 1)

	benign := vaulttest.NewCondition().Address()
	v.RegisterTarget(benign, dispatch.TargetFunc(
		func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
			return nil, nil
		}))

	// the malicious target tries to re-enter every guarded entry point
	// while the outer timelock execution holds the guard
	var nestedErrs []error
	evil := vaulttest.NewCondition().Address()
	v.RegisterTarget(evil, dispatch.TargetFunc(
		func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
			_, err := v.ExecuteTimelock(ctx, owner, benign, 1, "", nil, now+50)
			nestedErrs = append(nestedErrs, err)
			_, err = v.ExecuteStream(ctx, owner, benign, 1, "", nil, now+500)
			nestedErrs = append(nestedErrs, err)
			_, err = v.ExecuteTransaction(ctx, owner, 0)
			nestedErrs = append(nestedErrs, err)
			// the blocked reentry must not fail the outer call
			return []byte("done"), nil
		}))

	_, err := v.Deposit(at(now), vaulttest.NewCondition().Address(), 100)
	require.NoError(t, err)

	_, err = v.QueueTimelock(at(now), owner, evil, 5, "", nil, now+50)
	require.NoError(t, err)

	out, err := v.ExecuteTimelock(at(now+50), owner, evil, 5, "", nil, now+50)
	require.NoError(t, err)
	assert.Equal(t, []byte("done"), out)

	require.Len(t, nestedErrs, 3)
	for i, err := range nestedErrs {
		assert.Truef(t, dispatch.ErrReentry.Is(err), "nested call %d: %v", i, err)
	}

	// the outer dispatch completed, value arrived at the evil target
	bal, err := v.Balance(evil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), bal)
}

func TestDeposit(t *testing.T) {
	owner := vaulttest.NewCondition()
	v := newVault(t, []stronghold.Condition{owner}, 1)

	sender := vaulttest.NewCondition().Address()
	res, err := v.Deposit(at(1), sender, 75)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Tags)

	bal, err := v.Balance(v.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(75), bal)

	_, err = v.Deposit(at(1), sender, 0)
	assert.True(t, errors.ErrAmount.Is(err))
}

func TestQueries(t *testing.T) {
	a := vaulttest.NewCondition()
	b := vaulttest.NewCondition()
	v := newVault(t, []stronghold.Condition{a, b}, 2)

	assert.True(t, v.IsOwner(a.Address()))
	assert.True(t, v.IsOwner(b.Address()))
	assert.False(t, v.IsOwner(vaulttest.NewCondition().Address()))
	assert.Equal(t, uint32(2), v.Threshold())
	assert.Len(t, v.Owners(), 2)

	count, err := v.TransactionCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	_, err = v.Transaction(0)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestTimelockAndStreamNamespacesAreIndependent(t *testing.T) {
	const now = 20000
	owner := vaulttest.NewCondition()
	v := newVault(t, []stronghold.Condition{owner}, 1)
	target := vaulttest.NewCondition().Address()

	// the same parameters queued as a timelock do not occupy the
	// streaming namespace
	fingerprint, err := v.QueueTimelock(at(now), owner, target, 5, "", nil, now+100)
	require.NoError(t, err)

	queued, err := v.StreamQueued(fingerprint)
	require.NoError(t, err)
	assert.False(t, queued)

	_, err = v.QueueStream(at(now), owner, target, 5, "", nil, now+100)
	assert.NoError(t, err)
}

// plainStore hides the cache wrapping ability of the wrapped store.
type plainStore struct {
	stronghold.KVStore
}

func TestVaultWrapsPlainStore(t *testing.T) {
	owner := vaulttest.NewCondition()
	owners, err := ownership.NewRegistry([]stronghold.Address{owner.Address()}, 1)
	require.NoError(t, err)

	db := store.MemStore()
	v := New(plainStore{db}, owners, nil)

	_, err = v.Deposit(at(1), vaulttest.NewCondition().Address(), 30)
	require.NoError(t, err)

	// the btree overlay must write through to the wrapped store
	other := New(plainStore{db}, owners, nil)
	bal, err := other.Balance(other.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(30), bal)
}

func TestVaultOverCommitStore(t *testing.T) {
	db, cleanup := vaulttest.CommitKVStore(t)
	defer cleanup()
	require.NoError(t, db.LoadLatestVersion())

	owner := vaulttest.NewCondition()
	owners, err := ownership.NewRegistry([]stronghold.Address{owner.Address()}, 1)
	require.NoError(t, err)

	working := db.CacheWrap()
	v := New(working, owners, nil)
	_, err = v.Deposit(at(1), vaulttest.NewCondition().Address(), 75)
	require.NoError(t, err)
	require.NoError(t, working.Write())

	// the committed version must serve the state to a fresh instance
	reopened := New(db.CacheWrap(), owners, nil)
	bal, err := reopened.Balance(reopened.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(75), bal)
}

func TestGenesisConfiguredVault(t *testing.T) {
	owner := vaulttest.NewCondition()
	funded := vaulttest.ParseAddress(t, "0102030405060708090a0b0c0d0e0f1011121314")
	opts := stronghold.Options{
		"ownership": []byte(fmt.Sprintf(
			`{"owners": [%q], "threshold": 1}`, owner.Address())),
		"cash": []byte(`[{"address": "0102030405060708090a0b0c0d0e0f1011121314", "balance": 40}]`),
	}

	v, err := NewFromGenesis(store.MemStore(), opts, nil)
	require.NoError(t, err)
	assert.True(t, v.IsOwner(owner.Address()))

	bal, err := v.Balance(funded)
	require.NoError(t, err)
	assert.Equal(t, int64(40), bal)
}
