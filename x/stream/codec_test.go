package stream

import (
	"testing"

	proto "github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteMsgWireFormat(t *testing.T) {
	msg := ExecuteMsg{
		Target:    []byte{0x33},
		Value:     100,
		Data:      []byte{0x01, 0x02},
		Timestamp: 21000,
	}
	bz, err := msg.Marshal()
	require.NoError(t, err)

	var got ExecuteMsg
	require.NoError(t, got.Unmarshal(bz))
	assert.Equal(t, msg, got)

	// proto.Marshal prefers a message's own Marshal method, so both
	// paths must return and agree on the encoding.
	viaLib, err := proto.Marshal(&msg)
	require.NoError(t, err)
	assert.Equal(t, bz, viaLib)
}
