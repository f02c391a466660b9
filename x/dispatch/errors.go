package dispatch

import "github.com/iov-one/stronghold/errors"

var (
	// ErrReentry is returned when a guarded entry point is called while
	// another guarded call is still in progress.
	ErrReentry = errors.Register(1300, "reentrant call")

	// ErrCallFailed is returned when the external call itself reported
	// failure. The cause is external and opaque.
	ErrCallFailed = errors.Register(1301, "dispatch failed")
)
