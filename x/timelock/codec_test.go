package timelock

import (
	"testing"

	proto "github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueMsgWireFormat(t *testing.T) {
	msg := QueueMsg{
		Target:    []byte{0x11, 0x22},
		Value:     5,
		FuncSig:   "transfer(address,uint256)",
		Data:      []byte{0xff},
		Timestamp: 20050,
	}
	bz, err := msg.Marshal()
	require.NoError(t, err)

	var got QueueMsg
	require.NoError(t, got.Unmarshal(bz))
	assert.Equal(t, msg, got)

	// proto.Marshal prefers a message's own Marshal method, so both
	// paths must return and agree on the encoding.
	viaLib, err := proto.Marshal(&msg)
	require.NoError(t, err)
	assert.Equal(t, bz, viaLib)
}

func TestCancelMsgWireFormat(t *testing.T) {
	msg := CancelMsg{TxID: []byte{0x0A, 0x0B, 0x0C}}
	bz, err := msg.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0A, 0x03, 0x0A, 0x0B, 0x0C}, bz)

	var got CancelMsg
	require.NoError(t, got.Unmarshal(bz))
	assert.Equal(t, msg.TxID, got.TxID)
}
