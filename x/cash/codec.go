package cash

import (
	fmt "fmt"

	proto "github.com/gogo/protobuf/proto"

	"github.com/iov-one/stronghold/errors"
)

// Wallet is the balance record kept for a single account.
type Wallet struct {
	// Balance is the amount of funds held, in the smallest unit.
	Balance int64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance,omitempty"`
}

var _ proto.Message = (*Wallet)(nil)

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return fmt.Sprintf("wallet<%d>", m.Balance) }
func (*Wallet) ProtoMessage()    {}

func (m *Wallet) GetBalance() int64 {
	if m != nil {
		return m.Balance
	}
	return 0
}

// Marshal implements stronghold.Persistent with the proto3 wire encoding.
// The encoding is written out by hand: proto.Marshal resolves to this very
// method and must not be called from it.
func (m *Wallet) Marshal() ([]byte, error) {
	var bz []byte
	bz = appendVarintField(bz, 0x08, uint64(m.Balance))
	return bz, nil
}

// Unmarshal implements stronghold.Persistent.
func (m *Wallet) Unmarshal(bz []byte) error {
	for len(bz) > 0 {
		tag, n, err := readVarint(bz)
		if err != nil {
			return err
		}
		bz = bz[n:]
		switch tag {
		case 0x08: // balance
			v, vn, err := readVarint(bz)
			if err != nil {
				return err
			}
			m.Balance = int64(v)
			bz = bz[vn:]
		default:
			return errors.Wrapf(errors.ErrInput, "unexpected field tag %d", tag)
		}
	}
	return nil
}
