package stream

import (
	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
)

// The flag namespace is independent from the timelock one, the same
// fingerprint can be queued in both at once.
var flagPrefix = []byte("stream:")

func flagKey(fingerprint []byte) []byte {
	return append(flagPrefix, fingerprint...)
}

// IsQueued returns true if the fingerprint is currently flagged as queued.
func IsQueued(db stronghold.KVStore, fingerprint []byte) (bool, error) {
	ok, err := db.Has(flagKey(fingerprint))
	if err != nil {
		return false, errors.Wrap(err, "queued flag")
	}
	return ok, nil
}

func setQueued(db stronghold.KVStore, fingerprint []byte) error {
	return db.Set(flagKey(fingerprint), []byte{1})
}

func clearQueued(db stronghold.KVStore, fingerprint []byte) error {
	return db.Delete(flagKey(fingerprint))
}
