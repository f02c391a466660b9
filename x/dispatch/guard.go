package dispatch

import (
	"sync/atomic"

	"github.com/iov-one/stronghold/errors"
)

// Guard is a reentrancy lock shared by every entry point that performs an
// external dispatch. Top-level calls are processed sequentially, but a
// dispatched call can synchronously re-enter the engine. A nested guarded
// call while the guard is held fails immediately with ErrReentry instead of
// proceeding.
type Guard struct {
	locked int32
}

// Acquire takes the guard and returns a release function that must be called
// on every exit path. If the guard is already held, ErrReentry is returned.
//
//   release, err := guard.Acquire()
//   if err != nil {
//       return err
//   }
//   defer release()
func (g *Guard) Acquire() (release func(), err error) {
	if !atomic.CompareAndSwapInt32(&g.locked, 0, 1) {
		return nil, errors.Wrap(ErrReentry, "guard held")
	}
	return func() { atomic.StoreInt32(&g.locked, 0) }, nil
}
