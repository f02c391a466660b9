package multisig

import "github.com/iov-one/stronghold/errors"

var (
	// ErrInsufficientApprovals is returned when execution is attempted
	// before the approval threshold is met.
	ErrInsufficientApprovals = errors.Register(1200, "not enough approvals")
)
