package multisig

import (
	"strconv"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
	"github.com/iov-one/stronghold/x"
	"github.com/iov-one/stronghold/x/dispatch"
	"github.com/iov-one/stronghold/x/ownership"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	submitCost  int64 = 300
	approveCost int64 = 100
	revokeCost  int64 = 100
	executeCost int64 = 500
)

// RegisterRoutes will instantiate and register all handlers in this package.
// Source is the account that funds dispatched calls.
func RegisterRoutes(r stronghold.Registry, auth x.Authenticator, owners *ownership.Registry, disp *dispatch.Dispatcher, source stronghold.Address) {
	r.Handle(pathSubmitMsg, &submitHandler{auth: auth, owners: owners})
	r.Handle(pathApproveMsg, &approveHandler{auth: auth, owners: owners})
	r.Handle(pathRevokeMsg, &revokeHandler{auth: auth, owners: owners})
	r.Handle(pathExecuteMsg, &executeHandler{owners: owners, disp: disp, source: source})
}

type submitHandler struct {
	auth   x.Authenticator
	owners *ownership.Registry
}

var _ stronghold.Handler = (*submitHandler)(nil)

func (h submitHandler) Check(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.CheckResult, error) {
	var res stronghold.CheckResult
	if _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated = submitCost
	return res, nil
}

func (h submitHandler) Deliver(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.DeliverResult, error) {
	var res stronghold.DeliverResult
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}

	idx, err := appendTransaction(db, &Transaction{
		Destination: msg.Destination,
		Amount:      msg.Amount,
		Payload:     msg.Payload,
	})
	if err != nil {
		return res, err
	}

	res.Data = encodeIndex(idx)
	res.Log = strconv.FormatUint(idx, 10)
	res.Tags = ledgerTags("submit_multisig", idx)
	return res, nil
}

func (h submitHandler) validate(ctx stronghold.Context, tx stronghold.Tx) (*SubmitMsg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	submitMsg, ok := msg.(*SubmitMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := submitMsg.Validate(); err != nil {
		return nil, err
	}
	if _, err := h.owners.Authorize(ctx, h.auth); err != nil {
		return nil, err
	}
	return submitMsg, nil
}

type approveHandler struct {
	auth   x.Authenticator
	owners *ownership.Registry
}

var _ stronghold.Handler = (*approveHandler)(nil)

func (h approveHandler) Check(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.CheckResult, error) {
	var res stronghold.CheckResult
	if _, _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated = approveCost
	return res, nil
}

func (h approveHandler) Deliver(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.DeliverResult, error) {
	var res stronghold.DeliverResult
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}

	t, err := GetTransaction(db, msg.TxID)
	if err != nil {
		return res, err
	}
	if t.Executed {
		return res, errors.Wrapf(errors.ErrImmutable, "transaction %d executed", msg.TxID)
	}
	approved, err := HasApproved(db, msg.TxID, owner)
	if err != nil {
		return res, err
	}
	if approved {
		return res, errors.Wrapf(errors.ErrDuplicate, "already approved by %s", owner)
	}
	if err := setApproval(db, msg.TxID, owner); err != nil {
		return res, err
	}

	res.Tags = ledgerTags("approve_multisig", msg.TxID)
	return res, nil
}

func (h approveHandler) validate(ctx stronghold.Context, tx stronghold.Tx) (*ApproveMsg, stronghold.Address, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, err
	}
	approveMsg, ok := msg.(*ApproveMsg)
	if !ok {
		return nil, nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := approveMsg.Validate(); err != nil {
		return nil, nil, err
	}
	owner, err := h.owners.Authorize(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return approveMsg, owner, nil
}

type revokeHandler struct {
	auth   x.Authenticator
	owners *ownership.Registry
}

var _ stronghold.Handler = (*revokeHandler)(nil)

func (h revokeHandler) Check(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.CheckResult, error) {
	var res stronghold.CheckResult
	if _, _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated = revokeCost
	return res, nil
}

func (h revokeHandler) Deliver(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.DeliverResult, error) {
	var res stronghold.DeliverResult
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}

	t, err := GetTransaction(db, msg.TxID)
	if err != nil {
		return res, err
	}
	if t.Executed {
		return res, errors.Wrapf(errors.ErrImmutable, "transaction %d executed", msg.TxID)
	}
	approved, err := HasApproved(db, msg.TxID, owner)
	if err != nil {
		return res, err
	}
	if !approved {
		return res, errors.Wrapf(errors.ErrNotFound, "no approval by %s", owner)
	}
	if err := clearApproval(db, msg.TxID, owner); err != nil {
		return res, err
	}

	res.Tags = ledgerTags("revoke_multisig", msg.TxID)
	return res, nil
}

func (h revokeHandler) validate(ctx stronghold.Context, tx stronghold.Tx) (*RevokeMsg, stronghold.Address, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, err
	}
	revokeMsg, ok := msg.(*RevokeMsg)
	if !ok {
		return nil, nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := revokeMsg.Validate(); err != nil {
		return nil, nil, err
	}
	owner, err := h.owners.Authorize(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return revokeMsg, owner, nil
}

// executeHandler is deliberately not owner gated. Once the threshold is met
// anyone can trigger the dispatch, the authorization happened through the
// approvals.
type executeHandler struct {
	owners *ownership.Registry
	disp   *dispatch.Dispatcher
	source stronghold.Address
}

var _ stronghold.Handler = (*executeHandler)(nil)

func (h executeHandler) Check(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.CheckResult, error) {
	var res stronghold.CheckResult
	if _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated = executeCost
	return res, nil
}

func (h executeHandler) Deliver(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.DeliverResult, error) {
	var res stronghold.DeliverResult
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}

	release, err := h.disp.Guard().Acquire()
	if err != nil {
		return res, err
	}
	defer release()

	t, err := GetTransaction(db, msg.TxID)
	if err != nil {
		return res, err
	}
	if t.Executed {
		return res, errors.Wrapf(errors.ErrImmutable, "transaction %d executed", msg.TxID)
	}
	count, err := ApprovalCount(db, msg.TxID, h.owners)
	if err != nil {
		return res, err
	}
	if count < h.owners.Threshold() {
		return res, errors.Wrapf(ErrInsufficientApprovals, "%d of %d", count, h.owners.Threshold())
	}

	cdb, ok := db.(stronghold.CacheableKVStore)
	if !ok {
		return res, errors.Wrap(errors.ErrType, "store cannot be cache wrapped")
	}

	// The executed flag must be set before the external call is made, so
	// that a reentering callee cannot execute the entry a second time.
	t.Executed = true
	if err := saveTransaction(db, msg.TxID, t); err != nil {
		return res, err
	}

	// The payload is dispatched verbatim, there is no selector building
	// step for ledger transactions.
	out, err := h.disp.Dispatch(ctx, cdb, h.source, t.Destination, t.Amount, t.Payload)
	if err != nil {
		return res, errors.Wrapf(dispatch.ErrCallFailed, "%v", err)
	}

	res.Data = out
	res.Tags = ledgerTags("execute_multisig", msg.TxID)
	return res, nil
}

func (h executeHandler) validate(ctx stronghold.Context, tx stronghold.Tx) (*ExecuteMsg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	executeMsg, ok := msg.(*ExecuteMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := executeMsg.Validate(); err != nil {
		return nil, err
	}
	return executeMsg, nil
}

func ledgerTags(action string, idx uint64) []common.KVPair {
	return []common.KVPair{
		stronghold.Pair([]byte("action"), []byte(action)),
		stronghold.Pair([]byte("tx_id"), []byte(strconv.FormatUint(idx, 10))),
	}
}
