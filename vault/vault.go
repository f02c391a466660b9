package vault

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
	"github.com/iov-one/stronghold/store"
	"github.com/iov-one/stronghold/x"
	"github.com/iov-one/stronghold/x/cash"
	"github.com/iov-one/stronghold/x/dispatch"
	"github.com/iov-one/stronghold/x/multisig"
	"github.com/iov-one/stronghold/x/ownership"
	"github.com/iov-one/stronghold/x/stream"
	"github.com/iov-one/stronghold/x/timelock"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// account is the condition of the engine's own funds. Dispatched calls are
// funded from this account and deposits are credited to it.
var account = stronghold.NewCondition("vault", "account", []byte("treasury"))

// Vault is the facade of the dispatch engine. All state transitions go
// through its methods, each one processed atomically on top of the given
// store.
type Vault struct {
	db     stronghold.CacheableKVStore
	owners *ownership.Registry
	ctrl   cash.Controller
	disp   *dispatch.Dispatcher
	router *Router
	logger log.Logger
}

// New assembles a vault operating on the given store, owned by the given
// registry. A nil logger silences all logging. Stores without native cache
// wrapping get a btree overlay.
func New(db stronghold.KVStore, owners *ownership.Registry, logger log.Logger) *Vault {
	if logger == nil {
		logger = stronghold.DefaultLogger
	}
	cdb, ok := db.(stronghold.CacheableKVStore)
	if !ok {
		cdb = store.BTreeCacheable{KVStore: db}
	}
	ctrl := cash.NewController()
	disp := dispatch.NewDispatcher(ctrl)
	router := NewRouter()

	auth := x.ChainAuth(Authenticate{})
	source := account.Address()
	timelock.RegisterRoutes(router, auth, owners, disp, source)
	stream.RegisterRoutes(router, auth, owners, disp, source)
	multisig.RegisterRoutes(router, auth, owners, disp, source)

	return &Vault{
		db:     cdb,
		owners: owners,
		ctrl:   ctrl,
		disp:   disp,
		router: router,
		logger: logger,
	}
}

// NewFromGenesis assembles a vault configured by the genesis options. The
// initial account balances listed in the options are credited before the
// vault is returned.
func NewFromGenesis(db stronghold.KVStore, opts stronghold.Options, logger log.Logger) (*Vault, error) {
	owners, err := ownership.FromGenesis(opts)
	if err != nil {
		return nil, err
	}
	var ini cash.Initializer
	if err := ini.FromGenesis(opts, db); err != nil {
		return nil, err
	}
	return New(db, owners, logger), nil
}

// Address returns the address of the vault's own account.
func (v *Vault) Address() stronghold.Address {
	return account.Address()
}

// RegisterTarget makes the given callee reachable for dispatched calls.
func (v *Vault) RegisterTarget(addr stronghold.Address, t dispatch.Target) {
	v.disp.RegisterTarget(addr, t)
}

// TxID computes the fingerprint of a proposed call. Pure, no access control.
func (v *Vault) TxID(target stronghold.Address, value int64, funcSig string, data []byte, timestamp stronghold.UnixTime) []byte {
	return dispatch.Fingerprint(target, value, funcSig, data, timestamp)
}

// QueueTimelock proposes a delayed call and returns its fingerprint.
func (v *Vault) QueueTimelock(ctx stronghold.Context, signer stronghold.Condition, target stronghold.Address, value int64, funcSig string, data []byte, timestamp stronghold.UnixTime) ([]byte, error) {
	res, err := v.deliver(ctx, signer, &timelock.QueueMsg{
		Target:    target,
		Value:     value,
		FuncSig:   funcSig,
		Data:      data,
		Timestamp: int64(timestamp),
	})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// ExecuteTimelock triggers a queued delayed call. All call parameters must
// be resupplied, they are verified against the queued fingerprint. Returns
// the raw call result.
func (v *Vault) ExecuteTimelock(ctx stronghold.Context, signer stronghold.Condition, target stronghold.Address, value int64, funcSig string, data []byte, timestamp stronghold.UnixTime) ([]byte, error) {
	res, err := v.deliver(ctx, signer, &timelock.ExecuteMsg{
		Target:    target,
		Value:     value,
		FuncSig:   funcSig,
		Data:      data,
		Timestamp: int64(timestamp),
	})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// CancelTimelock removes a queued delayed call by its fingerprint.
func (v *Vault) CancelTimelock(ctx stronghold.Context, signer stronghold.Condition, fingerprint []byte) error {
	_, err := v.deliver(ctx, signer, &timelock.CancelMsg{TxID: fingerprint})
	return err
}

// QueueStream proposes a streaming call and returns its fingerprint.
func (v *Vault) QueueStream(ctx stronghold.Context, signer stronghold.Condition, target stronghold.Address, value int64, funcSig string, data []byte, timestamp stronghold.UnixTime) ([]byte, error) {
	res, err := v.deliver(ctx, signer, &stream.QueueMsg{
		Target:    target,
		Value:     value,
		FuncSig:   funcSig,
		Data:      data,
		Timestamp: int64(timestamp),
	})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// ExecuteStream triggers a queued streaming call. Before the target time
// only the elapsed fraction of the value is dispatched. Returns the raw call
// result.
func (v *Vault) ExecuteStream(ctx stronghold.Context, signer stronghold.Condition, target stronghold.Address, value int64, funcSig string, data []byte, timestamp stronghold.UnixTime) ([]byte, error) {
	res, err := v.deliver(ctx, signer, &stream.ExecuteMsg{
		Target:    target,
		Value:     value,
		FuncSig:   funcSig,
		Data:      data,
		Timestamp: int64(timestamp),
	})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// CancelStream removes a queued streaming call by its fingerprint.
func (v *Vault) CancelStream(ctx stronghold.Context, signer stronghold.Condition, fingerprint []byte) error {
	_, err := v.deliver(ctx, signer, &stream.CancelMsg{TxID: fingerprint})
	return err
}

// SubmitTransaction appends a new transaction to the multisig ledger and
// returns its index.
func (v *Vault) SubmitTransaction(ctx stronghold.Context, signer stronghold.Condition, destination stronghold.Address, amount int64, payload []byte) (uint64, error) {
	res, err := v.deliver(ctx, signer, &multisig.SubmitMsg{
		Destination: destination,
		Amount:      amount,
		Payload:     payload,
	})
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(res.Data), nil
}

// ApproveTransaction casts the signer's approval on a ledger transaction.
func (v *Vault) ApproveTransaction(ctx stronghold.Context, signer stronghold.Condition, txID uint64) error {
	_, err := v.deliver(ctx, signer, &multisig.ApproveMsg{TxID: txID})
	return err
}

// RevokeTransaction withdraws the signer's earlier approval.
func (v *Vault) RevokeTransaction(ctx stronghold.Context, signer stronghold.Condition, txID uint64) error {
	_, err := v.deliver(ctx, signer, &multisig.RevokeMsg{TxID: txID})
	return err
}

// ExecuteTransaction dispatches a ledger transaction that reached the
// approval threshold. Any caller may trigger it. Returns the raw call
// result.
func (v *Vault) ExecuteTransaction(ctx stronghold.Context, signer stronghold.Condition, txID uint64) ([]byte, error) {
	res, err := v.deliver(ctx, signer, &multisig.ExecuteMsg{TxID: txID})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Deposit credits the vault account with funds sent by the given sender.
// This is the "receive funds" entry point, it carries no payload and has no
// access control.
func (v *Vault) Deposit(ctx stronghold.Context, sender stronghold.Address, amount int64) (stronghold.DeliverResult, error) {
	var res stronghold.DeliverResult
	if amount <= 0 {
		return res, errors.Wrap(errors.ErrAmount, "must be positive")
	}

	cache := v.db.CacheWrap()
	if err := v.ctrl.IssueCoins(cache, v.Address(), amount); err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return res, errors.Wrap(err, "flush deposit")
	}

	v.logger.Info("deposit", "sender", sender, "amount", amount)
	res.Tags = []common.KVPair{
		stronghold.Pair([]byte("action"), []byte("deposit")),
		stronghold.Pair([]byte("sender"), []byte(hex.EncodeToString(sender))),
		stronghold.Pair([]byte("amount"), []byte(strconv.FormatInt(amount, 10))),
	}
	return res, nil
}

// IsOwner returns true if the address belongs to the owner set.
func (v *Vault) IsOwner(addr stronghold.Address) bool {
	return v.owners.IsOwner(addr)
}

// Owners returns a copy of the owner set.
func (v *Vault) Owners() []stronghold.Address {
	return v.owners.Owners()
}

// Threshold returns the multisig approval threshold.
func (v *Vault) Threshold() uint32 {
	return v.owners.Threshold()
}

// TimelockQueued returns true if the fingerprint is queued for delayed
// execution.
func (v *Vault) TimelockQueued(fingerprint []byte) (bool, error) {
	return timelock.IsQueued(v.db, fingerprint)
}

// StreamQueued returns true if the fingerprint is queued for streaming
// execution.
func (v *Vault) StreamQueued(fingerprint []byte) (bool, error) {
	return stream.IsQueued(v.db, fingerprint)
}

// Transaction loads a multisig ledger entry by its index.
func (v *Vault) Transaction(txID uint64) (*multisig.Transaction, error) {
	return multisig.GetTransaction(v.db, txID)
}

// TransactionCount returns the multisig ledger length.
func (v *Vault) TransactionCount() (uint64, error) {
	return multisig.TransactionCount(v.db)
}

// Approved returns true if the owner currently approves the transaction.
func (v *Vault) Approved(txID uint64, owner stronghold.Address) (bool, error) {
	return multisig.HasApproved(v.db, txID, owner)
}

// ApprovalCount returns the number of distinct owners approving the
// transaction.
func (v *Vault) ApprovalCount(txID uint64) (uint32, error) {
	return multisig.ApprovalCount(v.db, txID, v.owners)
}

// Balance returns the funds held by an account.
func (v *Vault) Balance(addr stronghold.Address) (int64, error) {
	return v.ctrl.Balance(v.db, addr)
}

// deliver routes one message to its handler on an isolated cache. The cache
// is written on success and discarded on failure, a failed operation leaves
// no trace in the store.
func (v *Vault) deliver(ctx stronghold.Context, signer stronghold.Condition, msg stronghold.Msg) (stronghold.DeliverResult, error) {
	ctx = withSigners(ctx, []stronghold.Condition{signer})
	ctx = stronghold.WithLogger(ctx, v.logger)

	tx := &msgTx{msg: msg}
	path := stronghold.GetPath(tx)

	cache := v.db.CacheWrap()
	res, err := v.router.Handler(path).Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		v.logger.Debug("message failed", "path", path, "err", err)
		return res, err
	}
	if err := cache.Write(); err != nil {
		return res, errors.Wrap(err, "flush operation")
	}
	return res, nil
}
