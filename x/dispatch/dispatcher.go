package dispatch

import (
	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
	"github.com/iov-one/stronghold/x/cash"
)

// Target is an external callee that can be dispatched to. Implementations
// are registered under their address and receive the raw payload together
// with the value credited to them.
//
// A call may synchronously re-enter the engine. Guarded entry points reject
// such nested calls with ErrReentry.
type Target interface {
	Call(ctx stronghold.Context, payload []byte, value int64) ([]byte, error)
}

// TargetFunc turns a plain function into a Target.
type TargetFunc func(ctx stronghold.Context, payload []byte, value int64) ([]byte, error)

func (f TargetFunc) Call(ctx stronghold.Context, payload []byte, value int64) ([]byte, error) {
	return f(ctx, payload, value)
}

// Dispatcher performs the shared "external call with value and payload"
// primitive. It owns the single reentrancy guard used by all dispatch modes.
type Dispatcher struct {
	guard   Guard
	cash    cash.Controller
	targets map[string]Target
}

// NewDispatcher returns a dispatcher moving funds with the given controller.
func NewDispatcher(ctrl cash.Controller) *Dispatcher {
	return &Dispatcher{
		cash:    ctrl,
		targets: make(map[string]Target),
	}
}

// Guard returns the shared reentrancy guard. Every entry point that can end
// up dispatching must acquire it, regardless of mode.
func (d *Dispatcher) Guard() *Guard {
	return &d.guard
}

// RegisterTarget makes the given callee reachable under its address.
// Registering the same address twice panics, as this is a setup time only
// operation.
func (d *Dispatcher) RegisterTarget(addr stronghold.Address, t Target) {
	key := string(addr)
	if _, ok := d.targets[key]; ok {
		panic("target already registered: " + addr.String())
	}
	d.targets[key] = t
}

// Dispatch transfers value from the source account to the target and invokes
// the target with the payload. The transfer and the call are atomic, a failed
// call leaves the source balance untouched. A panicking target is reported as
// a failed call rather than propagated.
//
// The returned error carries the external failure reason. Callers convert it
// into their own domain error.
func (d *Dispatcher) Dispatch(ctx stronghold.Context, db stronghold.CacheableKVStore, from, to stronghold.Address, value int64, payload []byte) (result []byte, err error) {
	t, ok := d.targets[string(to)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no target at %s", to)
	}

	scratch := db.CacheWrap()
	defer func() {
		if p := recover(); p != nil {
			err = errors.Wrapf(errors.ErrPanic, "target %s: %v", to, p)
		}
		if err != nil {
			scratch.Discard()
		}
	}()

	if value > 0 {
		if err := d.cash.MoveCoins(scratch, from, to, value); err != nil {
			return nil, errors.Wrap(err, "move value")
		}
	}
	result, err = t.Call(ctx, payload, value)
	if err != nil {
		return nil, errors.Wrap(err, "external call")
	}
	if err := scratch.Write(); err != nil {
		return nil, errors.Wrap(err, "flush dispatch")
	}
	return result, nil
}
