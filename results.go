package stronghold

import (
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult captures any non-error payload from a state transition.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a created
	// entity or the raw bytes returned by a dispatched call.
	Data []byte

	// Log is a human-readable informational string.
	Log string

	// Tags are emitted records describing the state transition. They can
	// be used to index and search the operation history.
	Tags []common.KVPair
}

// CheckResult captures any non-error payload from a validation run.
type CheckResult struct {
	// Data is a machine-parseable return value.
	Data []byte

	// Log is a human-readable informational string.
	Log string

	// GasAllocated is a rough cost estimate of the operation, used to
	// prioritize and rate-limit proposals.
	GasAllocated int64
}

// Pair is a shortcut to construct a single emitted record.
func Pair(key, value []byte) common.KVPair {
	return common.KVPair{Key: key, Value: value}
}
