package cash

import (
	"testing"

	proto "github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletWireFormat(t *testing.T) {
	w := Wallet{Balance: 150}
	bz, err := w.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x96, 0x01}, bz)

	var got Wallet
	require.NoError(t, got.Unmarshal(bz))
	assert.Equal(t, w, got)

	empty, err := (&Wallet{}).Marshal()
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWalletLibraryDelegation(t *testing.T) {
	// proto.Marshal prefers a message's own Marshal method, so both
	// paths must return and agree on the encoding.
	w := Wallet{Balance: 42}
	direct, err := w.Marshal()
	require.NoError(t, err)
	viaLib, err := proto.Marshal(&w)
	require.NoError(t, err)
	assert.Equal(t, direct, viaLib)

	var got Wallet
	require.NoError(t, proto.Unmarshal(viaLib, &got))
	assert.Equal(t, int64(42), got.Balance)
}

func TestWalletWireRejectsGarbage(t *testing.T) {
	var w Wallet
	assert.Error(t, w.Unmarshal([]byte{0x08}))
	assert.Error(t, w.Unmarshal([]byte{0x3A, 0x01, 0x00}))
}
