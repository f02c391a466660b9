package timelock

import (
	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
)

const (
	// MinDelay is the shortest allowed distance between now and the
	// execution timestamp at queue time, in seconds.
	MinDelay stronghold.UnixTime = 10

	// MaxDelay is the longest allowed distance between now and the
	// execution timestamp at queue time, in seconds.
	MaxDelay stronghold.UnixTime = 1000

	// GracePeriod is how long past its timestamp a queued call stays
	// executable, in seconds.
	GracePeriod stronghold.UnixTime = 1000
)

var flagPrefix = []byte("timelock:")

// flagKey returns the storage key of the queued flag for a fingerprint.
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

// The flag is a capability token, not a cache. No call parameters are stored,
// they must be resupplied and re-hashed at execution time.
func setQueued(db stronghold.KVStore, fingerprint []byte) error {
	return db.Set(flagKey(fingerprint), []byte{1})
}

func clearQueued(db stronghold.KVStore, fingerprint []byte) error {
	return db.Delete(flagKey(fingerprint))
}
