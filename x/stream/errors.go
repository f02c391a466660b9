package stream

import "github.com/iov-one/stronghold/errors"

var (
	// ErrWindow is returned when the target timestamp is not in the
	// future at queue time.
	ErrWindow = errors.Register(1400, "timestamp not in the future")
)
