package timelock

import (
	"encoding/binary"

	"github.com/iov-one/stronghold/errors"
)

// The proto3 wire encoding is written out by hand. proto.Marshal resolves to
// a message's own Marshal method and must not be called from it.

// callWire is the shared field layout of the queue and execute messages.
type callWire struct {
	target    []byte
	value     int64
	funcSig   string
	data      []byte
	timestamp int64
}

func (c callWire) marshal() ([]byte, error) {
	var bz []byte
	bz = appendBytesField(bz, 0x0A, c.target)
	bz = appendVarintField(bz, 0x10, uint64(c.value))
	bz = appendBytesField(bz, 0x1A, []byte(c.funcSig))
	bz = appendBytesField(bz, 0x22, c.data)
	bz = appendVarintField(bz, 0x28, uint64(c.timestamp))
	return bz, nil
}

func (c *callWire) unmarshal(bz []byte) error {
	for len(bz) > 0 {
		tag, n, err := readVarint(bz)
		if err != nil {
			return err
		}
		bz = bz[n:]
		switch tag {
		case 0x0A: // target
			raw, rn, err := readBytesField(bz)
			if err != nil {
				return err
			}
			c.target = raw
			bz = bz[rn:]
		case 0x10: // value
			v, vn, err := readVarint(bz)
			if err != nil {
				return err
			}
			c.value = int64(v)
			bz = bz[vn:]
		case 0x1A: // func_sig
			raw, rn, err := readBytesField(bz)
			if err != nil {
				return err
			}
			c.funcSig = string(raw)
			bz = bz[rn:]
		case 0x22: // data
			raw, rn, err := readBytesField(bz)
			if err != nil {
				return err
			}
			c.data = raw
			bz = bz[rn:]
		case 0x28: // timestamp
			v, vn, err := readVarint(bz)
			if err != nil {
				return err
			}
			c.timestamp = int64(v)
			bz = bz[vn:]
		default:
			return errors.Wrapf(errors.ErrInput, "unexpected field tag %d", tag)
		}
	}
	return nil
}

// unmarshalID decodes a message holding a single fingerprint field.
func unmarshalID(bz []byte) ([]byte, error) {
	var id []byte
	for len(bz) > 0 {
		tag, n, err := readVarint(bz)
		if err != nil {
			return nil, err
		}
		bz = bz[n:]
		if tag != 0x0A {
			return nil, errors.Wrapf(errors.ErrInput, "unexpected field tag %d", tag)
		}
		raw, rn, err := readBytesField(bz)
		if err != nil {
			return nil, err
		}
		id = raw
		bz = bz[rn:]
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
