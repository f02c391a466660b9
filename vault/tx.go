package vault

import (
	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
)

// msgTx is a thin stronghold.Tx wrapper over a message created by the vault
// facade. It never travels over the wire.
type msgTx struct {
	msg stronghold.Msg
}

var _ stronghold.Tx = (*msgTx)(nil)

// GetMsg implements stronghold.Tx interface.
func (tx *msgTx) GetMsg() (stronghold.Msg, error) {
	return tx.msg, nil
}

// Unmarshal implements stronghold.Tx interface.
func (tx *msgTx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "operation not supported, vault transaction is not serializable")
}

// Marshal implements stronghold.Tx interface.
func (tx *msgTx) Marshal() ([]byte, error) {
	return nil, errors.Wrap(errors.ErrHuman, "operation not supported, vault transaction is not serializable")
}
