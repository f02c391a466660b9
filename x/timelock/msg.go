package timelock

import (
	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
)

const (
	pathQueueMsg   = "timelock/queue"
	pathExecuteMsg = "timelock/execute"
	pathCancelMsg  = "timelock/cancel"

	// fingerprintLength is the width of a call fingerprint (keccak256).
	fingerprintLength = 32
)

var (
	_ stronghold.Msg = (*QueueMsg)(nil)
	_ stronghold.Msg = (*ExecuteMsg)(nil)
	_ stronghold.Msg = (*CancelMsg)(nil)
)

// Path implements stronghold.Msg interface.
func (QueueMsg) Path() string {
	return pathQueueMsg
}

// Validate implements stronghold.Msg interface.
func (m *QueueMsg) Validate() error {
	return validateCall(m.Target, m.Value, m.Timestamp)
}

// Path implements stronghold.Msg interface.
func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

// Validate implements stronghold.Msg interface.
func (m *ExecuteMsg) Validate() error {
	return validateCall(m.Target, m.Value, m.Timestamp)
}

// Path implements stronghold.Msg interface.
func (CancelMsg) Path() string {
	return pathCancelMsg
}

// Validate implements stronghold.Msg interface.
func (m *CancelMsg) Validate() error {
	if len(m.TxID) != fingerprintLength {
		return errors.Wrapf(errors.ErrInput, "fingerprint must be %d bytes", fingerprintLength)
	}
	return nil
}

// validateCall is the stateless check shared by all messages carrying the
// full call parameter set.
func validateCall(target []byte, value, timestamp int64) error {
	if err := stronghold.Address(target).Validate(); err != nil {
		return errors.Wrap(err, "target")
	}
	if value < 0 {
		return errors.Wrap(errors.ErrAmount, "negative value")
	}
	if timestamp <= 0 {
		return errors.Wrap(errors.ErrInput, "timestamp must be positive")
	}
	return nil
}
