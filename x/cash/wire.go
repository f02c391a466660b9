package cash

import (
	"encoding/binary"

	"github.com/iov-one/stronghold/errors"
)

func appendVarint(bz []byte, v uint64) []byte {
	for v >= 0x80 {
		bz = append(bz, byte(v)|0x80)
		v >>= 7
	}
	return append(bz, byte(v))
}

// appendVarintField writes a tagged varint field, omitting the zero value as
// proto3 does.
func appendVarintField(bz []byte, tag byte, v uint64) []byte {
	if v == 0 {
		return bz
	}
	return appendVarint(append(bz, tag), v)
}

func readVarint(bz []byte) (uint64, int, error) {
	v, n := binary.Uvarint(bz)
	if n <= 0 {
		return 0, 0, errors.Wrap(errors.ErrInput, "invalid varint")
	}
	return v, n, nil
}
