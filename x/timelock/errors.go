package timelock

import "github.com/iov-one/stronghold/errors"

var (
	// ErrWindow is returned when the proposed timestamp is outside the
	// allowed queueing window.
	ErrWindow = errors.Register(1100, "timestamp out of window")

	// ErrNotDue is returned when execution is attempted before the queued
	// timestamp.
	ErrNotDue = errors.Register(1101, "not yet due")
)
