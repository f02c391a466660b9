package multisig

import (
	"encoding/binary"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
	"github.com/iov-one/stronghold/x/ownership"
)

var (
	countKey       = []byte("multisig:count")
	txPrefix       = []byte("multisig:tx:")
	approvalPrefix = []byte("multisig:approval:")
)

func encodeIndex(idx uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, idx)
	return raw
}

func txKey(idx uint64) []byte {
	return append(txPrefix, encodeIndex(idx)...)
}

func approvalKey(idx uint64, owner stronghold.Address) []byte {
	key := append(approvalPrefix, encodeIndex(idx)...)
	return append(key, owner...)
}

// TransactionCount returns the ledger length. Indexes 0..count-1 exist.
func TransactionCount(db stronghold.KVStore) (uint64, error) {
	raw, err := db.Get(countKey)
	if err != nil {
		return 0, errors.Wrap(err, "transaction count")
	}
	if raw == nil {
		return 0, nil
	}
	return binary.BigEndian.Uint64(raw), nil
}

// appendTransaction stores the transaction under the next free index and
// returns that index. The ledger is append-only, entries are never removed.
func appendTransaction(db stronghold.KVStore, t *Transaction) (uint64, error) {
	idx, err := TransactionCount(db)
	if err != nil {
		return 0, err
	}
	raw, err := t.Marshal()
	if err != nil {
		return 0, errors.Wrap(err, "serialize transaction")
	}
	if err := db.Set(txKey(idx), raw); err != nil {
		return 0, err
	}
	if err := db.Set(countKey, encodeIndex(idx+1)); err != nil {
		return 0, err
	}
	return idx, nil
}

// GetTransaction loads the ledger entry at the given index. It fails with
// ErrNotFound for an index that was never assigned.
func GetTransaction(db stronghold.KVStore, idx uint64) (*Transaction, error) {
	raw, err := db.Get(txKey(idx))
	if err != nil {
		return nil, errors.Wrap(err, "load transaction")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "transaction %d", idx)
	}
	t := new(Transaction)
	if err := t.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "parse transaction")
	}
	return t, nil
}

func saveTransaction(db stronghold.KVStore, idx uint64, t *Transaction) error {
	raw, err := t.Marshal()
	if err != nil {
		return errors.Wrap(err, "serialize transaction")
	}
	return db.Set(txKey(idx), raw)
}

// HasApproved returns true if the owner's approval flag is set on the
// transaction.
func HasApproved(db stronghold.KVStore, idx uint64, owner stronghold.Address) (bool, error) {
	ok, err := db.Has(approvalKey(idx, owner))
	if err != nil {
		return false, errors.Wrap(err, "approval flag")
	}
	return ok, nil
}

func setApproval(db stronghold.KVStore, idx uint64, owner stronghold.Address) error {
	return db.Set(approvalKey(idx, owner), []byte{1})
}

func clearApproval(db stronghold.KVStore, idx uint64, owner stronghold.Address) error {
	return db.Delete(approvalKey(idx, owner))
}

// ApprovalCount returns the number of distinct owners that currently approve
// the transaction. It iterates the fixed owner set, so revoked and re-cast
// approvals can never be counted twice.
func ApprovalCount(db stronghold.KVStore, idx uint64, owners *ownership.Registry) (uint32, error) {
	var count uint32
	for _, o := range owners.Owners() {
		ok, err := HasApproved(db, idx, o)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}
