package stream

import (
	fmt "fmt"

	proto "github.com/gogo/protobuf/proto"
)

// QueueMsg proposes a call whose dispatched value ramps up linearly toward
// the target timestamp.
type QueueMsg struct {
	// Target is the address of the callee.
	Target []byte `protobuf:"bytes,1,opt,name=target,proto3" json:"target,omitempty"`
	// Value is the full amount released once the target time is reached.
	Value int64 `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
	// FuncSig is the function signature the call selector is derived
	// from. Empty means the data is passed through verbatim.
	FuncSig string `protobuf:"bytes,3,opt,name=func_sig,json=funcSig,proto3" json:"func_sig,omitempty"`
	// Data is the opaque call payload.
	Data []byte `protobuf:"bytes,4,opt,name=data,proto3" json:"data,omitempty"`
	// Timestamp is the target time of full value release, unix seconds.
	Timestamp int64 `protobuf:"varint,5,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
}

var _ proto.Message = (*QueueMsg)(nil)

func (m *QueueMsg) Reset()         { *m = QueueMsg{} }
func (m *QueueMsg) String() string { return fmt.Sprintf("queue stream for %d", m.Timestamp) }
func (*QueueMsg) ProtoMessage()    {}

func (m *QueueMsg) Marshal() ([]byte, error) {
	return callWire{m.Target, m.Value, m.FuncSig, m.Data, m.Timestamp}.marshal()
}

func (m *QueueMsg) Unmarshal(bz []byte) error {
	var c callWire
	if err := c.unmarshal(bz); err != nil {
		return err
	}
	*m = QueueMsg{Target: c.target, Value: c.value, FuncSig: c.funcSig, Data: c.data, Timestamp: c.timestamp}
	return nil
}

// ExecuteMsg triggers a queued call. All call parameters must be resupplied
// and are verified against the queued fingerprint.
type ExecuteMsg struct {
	Target    []byte `protobuf:"bytes,1,opt,name=target,proto3" json:"target,omitempty"`
	Value     int64  `protobuf:"varint,2,opt,name=value,proto3" json:"value,omitempty"`
	FuncSig   string `protobuf:"bytes,3,opt,name=func_sig,json=funcSig,proto3" json:"func_sig,omitempty"`
	Data      []byte `protobuf:"bytes,4,opt,name=data,proto3" json:"data,omitempty"`
	Timestamp int64  `protobuf:"varint,5,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
}

var _ proto.Message = (*ExecuteMsg)(nil)

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return fmt.Sprintf("execute stream for %d", m.Timestamp) }
func (*ExecuteMsg) ProtoMessage()    {}

func (m *ExecuteMsg) Marshal() ([]byte, error) {
	return callWire{m.Target, m.Value, m.FuncSig, m.Data, m.Timestamp}.marshal()
}

func (m *ExecuteMsg) Unmarshal(bz []byte) error {
	var c callWire
	if err := c.unmarshal(bz); err != nil {
		return err
	}
	*m = ExecuteMsg{Target: c.target, Value: c.value, FuncSig: c.funcSig, Data: c.data, Timestamp: c.timestamp}
	return nil
}

// CancelMsg removes a queued call by its fingerprint.
type CancelMsg struct {
	// TxID is the fingerprint of the queued call.
	TxID []byte `protobuf:"bytes,1,opt,name=tx_id,json=txId,proto3" json:"tx_id,omitempty"`
}

var _ proto.Message = (*CancelMsg)(nil)

func (m *CancelMsg) Reset()         { *m = CancelMsg{} }
func (m *CancelMsg) String() string { return fmt.Sprintf("cancel stream %X", m.TxID) }
func (*CancelMsg) ProtoMessage()    {}

func (m *CancelMsg) Marshal() ([]byte, error) {
	var bz []byte
	bz = appendBytesField(bz, 0x0A, m.TxID)
	return bz, nil
}

func (m *CancelMsg) Unmarshal(bz []byte) error {
	id, err := unmarshalID(bz)
	if err != nil {
		return err
	}
	m.TxID = id
	return nil
}
