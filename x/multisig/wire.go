package multisig

import (
	"encoding/binary"

	"github.com/iov-one/stronghold/errors"
)

// The proto3 wire encoding is written out by hand. proto.Marshal resolves to
// a message's own Marshal method and must not be called from it.

// marshalTxID encodes a message holding a single ledger index field.
func marshalTxID(id uint64) []byte {
	var bz []byte
	return appendVarintField(bz, 0x08, id)
}

func unmarshalTxID(bz []byte) (uint64, error) {
	var id uint64
	for len(bz) > 0 {
		tag, n, err := readVarint(bz)
		if err != nil {
			return 0, err
		}
		bz = bz[n:]
		if tag != 0x08 {
			return 0, errors.Wrapf(errors.ErrInput, "unexpected field tag %d", tag)
		}
		v, vn, err := readVarint(bz)
		if err != nil {
			return 0, err
		}
		id = v
		bz = bz[vn:]
	}
	return id, nil
}

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

// appendBytesField writes a tagged length-delimited field, omitting the
// empty value as proto3 does.
func appendBytesField(bz []byte, tag byte, raw []byte) []byte {
	if len(raw) == 0 {
		return bz
	}
	bz = appendVarint(append(bz, tag), uint64(len(raw)))
	return append(bz, raw...)
}

func readVarint(bz []byte) (uint64, int, error) {
	v, n := binary.Uvarint(bz)
	if n <= 0 {
		return 0, 0, errors.Wrap(errors.ErrInput, "invalid varint")
	}
	return v, n, nil
}

func readBytesField(bz []byte) ([]byte, int, error) {
	l, n, err := readVarint(bz)
	if err != nil {
		return nil, 0, err
	}
	if l > uint64(len(bz)-n) {
		return nil, 0, errors.Wrap(errors.ErrInput, "truncated field")
	}
	raw := make([]byte, int(l))
	copy(raw, bz[n:])
	return raw, n + int(l), nil
}
