package timelock

import (
	"encoding/hex"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
	"github.com/iov-one/stronghold/x"
	"github.com/iov-one/stronghold/x/dispatch"
	"github.com/iov-one/stronghold/x/ownership"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	queueCost   int64 = 150
	executeCost int64 = 500
	cancelCost  int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this package.
// Source is the account that funds dispatched calls.
func RegisterRoutes(r stronghold.Registry, auth x.Authenticator, owners *ownership.Registry, disp *dispatch.Dispatcher, source stronghold.Address) {
	r.Handle(pathQueueMsg, &queueHandler{auth: auth, owners: owners})
	r.Handle(pathExecuteMsg, &executeHandler{auth: auth, owners: owners, disp: disp, source: source})
	r.Handle(pathCancelMsg, &cancelHandler{auth: auth, owners: owners})
}

type queueHandler struct {
	auth   x.Authenticator
	owners *ownership.Registry
}

var _ stronghold.Handler = (*queueHandler)(nil)

func (h queueHandler) Check(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.CheckResult, error) {
	var res stronghold.CheckResult
	if _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated = queueCost
	return res, nil
}

func (h queueHandler) Deliver(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.DeliverResult, error) {
	var res stronghold.DeliverResult
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}

	blockTime, err := stronghold.BlockTime(ctx)
	if err != nil {
		return res, err
	}
	now := stronghold.AsUnixTime(blockTime)
	ts := stronghold.UnixTime(msg.Timestamp)
	if ts < now+MinDelay || ts > now+MaxDelay {
		return res, errors.Wrapf(ErrWindow, "timestamp %d not within [%d, %d]", ts, now+MinDelay, now+MaxDelay)
	}

	fingerprint := dispatch.Fingerprint(msg.Target, msg.Value, msg.FuncSig, msg.Data, ts)
	queued, err := IsQueued(db, fingerprint)
	if err != nil {
		return res, err
	}
	if queued {
		return res, errors.Wrapf(errors.ErrDuplicate, "fingerprint %X", fingerprint)
	}
	if err := setQueued(db, fingerprint); err != nil {
		return res, err
	}

	res.Data = fingerprint
	res.Tags = queueTags("queue_timelock", fingerprint)
	return res, nil
}

func (h queueHandler) validate(ctx stronghold.Context, tx stronghold.Tx) (*QueueMsg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	queueMsg, ok := msg.(*QueueMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := queueMsg.Validate(); err != nil {
		return nil, err
	}
	if _, err := h.owners.Authorize(ctx, h.auth); err != nil {
		return nil, err
	}
	return queueMsg, nil
}

type executeHandler struct {
	auth   x.Authenticator
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

	blockTime, err := stronghold.BlockTime(ctx)
	if err != nil {
		return res, err
	}
	now := stronghold.AsUnixTime(blockTime)
	ts := stronghold.UnixTime(msg.Timestamp)

	fingerprint := dispatch.Fingerprint(msg.Target, msg.Value, msg.FuncSig, msg.Data, ts)
	queued, err := IsQueued(db, fingerprint)
	if err != nil {
		return res, err
	}
	if !queued {
		return res, errors.Wrapf(errors.ErrNotFound, "fingerprint %X not queued", fingerprint)
	}
	if now < ts {
		return res, errors.Wrapf(ErrNotDue, "due at %d, now %d", ts, now)
	}
	if now > ts+GracePeriod {
		return res, errors.Wrapf(errors.ErrExpired, "grace period ended at %d, now %d", ts+GracePeriod, now)
	}

	cdb, ok := db.(stronghold.CacheableKVStore)
	if !ok {
		return res, errors.Wrap(errors.ErrType, "store cannot be cache wrapped")
	}

	// The flag must be cleared before the external call is made, so that
	// a reentering callee cannot observe the entry as still queued.
	if err := clearQueued(db, fingerprint); err != nil {
		return res, err
	}

	payload := dispatch.BuildPayload(msg.FuncSig, msg.Data)
	out, err := h.disp.Dispatch(ctx, cdb, h.source, msg.Target, msg.Value, payload)
	if err != nil {
		return res, errors.Wrapf(dispatch.ErrCallFailed, "%v", err)
	}

	res.Data = out
	res.Tags = queueTags("execute_timelock", fingerprint)
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
	if _, err := h.owners.Authorize(ctx, h.auth); err != nil {
		return nil, err
	}
	return executeMsg, nil
}

type cancelHandler struct {
	auth   x.Authenticator
	owners *ownership.Registry
}

var _ stronghold.Handler = (*cancelHandler)(nil)

func (h cancelHandler) Check(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.CheckResult, error) {
	var res stronghold.CheckResult
	if _, err := h.validate(ctx, tx); err != nil {
		return res, err
	}
	res.GasAllocated = cancelCost
	return res, nil
}

func (h cancelHandler) Deliver(ctx stronghold.Context, db stronghold.KVStore, tx stronghold.Tx) (stronghold.DeliverResult, error) {
	var res stronghold.DeliverResult
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return res, err
	}

	queued, err := IsQueued(db, msg.TxID)
	if err != nil {
		return res, err
	}
	if !queued {
		return res, errors.Wrapf(errors.ErrNotFound, "fingerprint %X not queued", msg.TxID)
	}
	if err := clearQueued(db, msg.TxID); err != nil {
		return res, err
	}

	res.Tags = queueTags("cancel_timelock", msg.TxID)
	return res, nil
}

func (h cancelHandler) validate(ctx stronghold.Context, tx stronghold.Tx) (*CancelMsg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	cancelMsg, ok := msg.(*CancelMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := cancelMsg.Validate(); err != nil {
		return nil, err
	}
	if _, err := h.owners.Authorize(ctx, h.auth); err != nil {
		return nil, err
	}
	return cancelMsg, nil
}

func queueTags(action string, fingerprint []byte) []common.KVPair {
	return []common.KVPair{
		stronghold.Pair([]byte("action"), []byte(action)),
		stronghold.Pair([]byte("fingerprint"), []byte(hex.EncodeToString(fingerprint))),
	}
}
