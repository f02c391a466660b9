package multisig

import (
	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
)

const (
	pathSubmitMsg  = "multisig/submit"
	pathApproveMsg = "multisig/approve"
	pathRevokeMsg  = "multisig/revoke"
	pathExecuteMsg = "multisig/execute"
)

var (
	_ stronghold.Msg = (*SubmitMsg)(nil)
	_ stronghold.Msg = (*ApproveMsg)(nil)
	_ stronghold.Msg = (*RevokeMsg)(nil)
	_ stronghold.Msg = (*ExecuteMsg)(nil)
)

// Path implements stronghold.Msg interface.
func (SubmitMsg) Path() string {
	return pathSubmitMsg
}

// Validate implements stronghold.Msg interface.
func (m *SubmitMsg) Validate() error {
	if err := stronghold.Address(m.Destination).Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount < 0 {
		return errors.Wrap(errors.ErrAmount, "negative amount")
	}
	return nil
}

// Path implements stronghold.Msg interface.
func (ApproveMsg) Path() string {
	return pathApproveMsg
}

// Validate implements stronghold.Msg interface.
func (m *ApproveMsg) Validate() error {
	return nil
}

// Path implements stronghold.Msg interface.
func (RevokeMsg) Path() string {
	return pathRevokeMsg
}

// Validate implements stronghold.Msg interface.
func (m *RevokeMsg) Validate() error {
	return nil
}

// Path implements stronghold.Msg interface.
func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

// Validate implements stronghold.Msg interface.
func (m *ExecuteMsg) Validate() error {
	return nil
}
