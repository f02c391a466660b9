package dispatch

import (
	"encoding/binary"
	"hash"

	stronghold "github.com/iov-one/stronghold"
	"golang.org/x/crypto/sha3"
)

// SelectorLength is the size of the function selector prepended to the data
// payload when a function signature is given.
const SelectorLength = 4

// Fingerprint computes the deterministic identifier of a proposed call from
// all five call parameters. It is both the storage key of a queued proposal
// and the integrity check at execution time. Identical parameters always
// collide to the same fingerprint, that is the dedup and replay key.
func Fingerprint(to stronghold.Address, value int64, funcSig string, data []byte, timestamp stronghold.UnixTime) []byte {
	h := sha3.NewLegacyKeccak256()
	writeBytes(h, to)
	writeInt64(h, value)
	writeBytes(h, []byte(funcSig))
	writeBytes(h, data)
	writeInt64(h, int64(timestamp))
	return h.Sum(nil)
}

// Selector derives the call selector from a function signature string.
func Selector(funcSig string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(funcSig))
	return h.Sum(nil)[:SelectorLength]
}

// BuildPayload assembles the raw payload of an external call. With a function
// signature the selector is prepended to the data, without one the data is
// passed through verbatim.
func BuildPayload(funcSig string, data []byte) []byte {
	if funcSig == "" {
		return data
	}
	return append(Selector(funcSig), data...)
}

// writeBytes writes a length-prefixed chunk so that adjacent variable-length
// fields cannot be shifted into each other without changing the digest.
func writeBytes(h hash.Hash, raw []byte) {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(raw)))
	h.Write(size[:])
	h.Write(raw)
}

func writeInt64(h hash.Hash, v int64) {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(v))
	h.Write(raw[:])
}
