package multisig

import (
	fmt "fmt"

	proto "github.com/gogo/protobuf/proto"

	"github.com/iov-one/stronghold/errors"
)

// Transaction is a single entry of the append-only proposal ledger.
type Transaction struct {
	// Destination is the address of the callee.
	Destination []byte `protobuf:"bytes,1,opt,name=destination,proto3" json:"destination,omitempty"`
	// Amount is the value carried by the call.
	Amount int64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
	// Payload is the raw call input, dispatched verbatim.
	Payload []byte `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
	// Executed is set exactly once. An executed transaction is immutable.
	Executed bool `protobuf:"varint,4,opt,name=executed,proto3" json:"executed,omitempty"`
}

var _ proto.Message = (*Transaction)(nil)

func (m *Transaction) Reset()         { *m = Transaction{} }
func (m *Transaction) String() string { return fmt.Sprintf("transaction to %X", m.Destination) }
func (*Transaction) ProtoMessage()    {}

// Marshal implements stronghold.Persistent with the proto3 wire encoding.
// The encoding is written out by hand: proto.Marshal resolves to this very
// method and must not be called from it.
func (m *Transaction) Marshal() ([]byte, error) {
	var bz []byte
	bz = appendBytesField(bz, 0x0A, m.Destination)
	bz = appendVarintField(bz, 0x10, uint64(m.Amount))
	bz = appendBytesField(bz, 0x1A, m.Payload)
	if m.Executed {
		bz = appendVarintField(bz, 0x20, 1)
	}
	return bz, nil
}

// Unmarshal implements stronghold.Persistent.
func (m *Transaction) Unmarshal(bz []byte) error {
	for len(bz) > 0 {
		tag, n, err := readVarint(bz)
		if err != nil {
			return err
		}
		bz = bz[n:]
		switch tag {
		case 0x0A: // destination
			raw, rn, err := readBytesField(bz)
			if err != nil {
				return err
			}
			m.Destination = raw
			bz = bz[rn:]
		case 0x10: // amount
			v, vn, err := readVarint(bz)
			if err != nil {
				return err
			}
			m.Amount = int64(v)
			bz = bz[vn:]
		case 0x1A: // payload
			raw, rn, err := readBytesField(bz)
			if err != nil {
				return err
			}
			m.Payload = raw
			bz = bz[rn:]
		case 0x20: // executed
			v, vn, err := readVarint(bz)
			if err != nil {
				return err
			}
			m.Executed = v != 0
			bz = bz[vn:]
		default:
			return errors.Wrapf(errors.ErrInput, "unexpected field tag %d", tag)
		}
	}
	return nil
}

// SubmitMsg appends a new transaction to the ledger.
type SubmitMsg struct {
	Destination []byte `protobuf:"bytes,1,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      int64  `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
	Payload     []byte `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
}

var _ proto.Message = (*SubmitMsg)(nil)

func (m *SubmitMsg) Reset()         { *m = SubmitMsg{} }
func (m *SubmitMsg) String() string { return fmt.Sprintf("submit transaction to %X", m.Destination) }
func (*SubmitMsg) ProtoMessage()    {}

func (m *SubmitMsg) Marshal() ([]byte, error) {
	var bz []byte
	bz = appendBytesField(bz, 0x0A, m.Destination)
	bz = appendVarintField(bz, 0x10, uint64(m.Amount))
	bz = appendBytesField(bz, 0x1A, m.Payload)
	return bz, nil
}

func (m *SubmitMsg) Unmarshal(bz []byte) error {
	var tx Transaction
	if err := tx.Unmarshal(bz); err != nil {
		return err
	}
	if tx.Executed {
		return errors.Wrap(errors.ErrInput, "unexpected field tag 32")
	}
	*m = SubmitMsg{Destination: tx.Destination, Amount: tx.Amount, Payload: tx.Payload}
	return nil
}

// ApproveMsg casts the caller's approval on a transaction.
type ApproveMsg struct {
	// TxID is the ledger index of the transaction.
	TxID uint64 `protobuf:"varint,1,opt,name=tx_id,json=txId,proto3" json:"tx_id,omitempty"`
}

var _ proto.Message = (*ApproveMsg)(nil)

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return fmt.Sprintf("approve transaction %d", m.TxID) }
func (*ApproveMsg) ProtoMessage()    {}

func (m *ApproveMsg) Marshal() ([]byte, error) {
	return marshalTxID(m.TxID), nil
}

func (m *ApproveMsg) Unmarshal(bz []byte) error {
	id, err := unmarshalTxID(bz)
	if err != nil {
		return err
	}
	m.TxID = id
	return nil
}

// RevokeMsg withdraws the caller's earlier approval.
type RevokeMsg struct {
	TxID uint64 `protobuf:"varint,1,opt,name=tx_id,json=txId,proto3" json:"tx_id,omitempty"`
}

var _ proto.Message = (*RevokeMsg)(nil)

func (m *RevokeMsg) Reset()         { *m = RevokeMsg{} }
func (m *RevokeMsg) String() string { return fmt.Sprintf("revoke approval of transaction %d", m.TxID) }
func (*RevokeMsg) ProtoMessage()    {}

func (m *RevokeMsg) Marshal() ([]byte, error) {
	return marshalTxID(m.TxID), nil
}

func (m *RevokeMsg) Unmarshal(bz []byte) error {
	id, err := unmarshalTxID(bz)
	if err != nil {
		return err
	}
	m.TxID = id
	return nil
}

// ExecuteMsg dispatches a transaction that reached the approval threshold.
type ExecuteMsg struct {
	TxID uint64 `protobuf:"varint,1,opt,name=tx_id,json=txId,proto3" json:"tx_id,omitempty"`
}

var _ proto.Message = (*ExecuteMsg)(nil)

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return fmt.Sprintf("execute transaction %d", m.TxID) }
func (*ExecuteMsg) ProtoMessage()    {}

func (m *ExecuteMsg) Marshal() ([]byte, error) {
	return marshalTxID(m.TxID), nil
}

func (m *ExecuteMsg) Unmarshal(bz []byte) error {
	id, err := unmarshalTxID(bz)
	if err != nil {
		return err
	}
	m.TxID = id
	return nil
}
