package dispatch

import (
	"bytes"
	"encoding/hex"
	"testing"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/vaulttest"
	"github.com/stretchr/testify/assert"
)

func TestSelectorKnownVector(t *testing.T) {
	// the ERC20 transfer selector is a well known value
	got := Selector("transfer(address,uint256)")
	assert.Equal(t, "a9059cbb", hex.EncodeToString(got))
}

func TestBuildPayload(t *testing.T) {
	data := []byte{0xde, 0xad}

	raw := BuildPayload("", data)
	assert.Equal(t, data, raw)

	raw = BuildPayload("ping()", data)
	assert.Len(t, raw, SelectorLength+len(data))
	assert.Equal(t, Selector("ping()"), raw[:SelectorLength])
	assert.Equal(t, data, raw[SelectorLength:])
}

func TestFingerprintDeterministic(t *testing.T) {
	to := vaulttest.NewCondition().Address()
	a := Fingerprint(to, 5, "ping()", []byte{1, 2}, 100)
	b := Fingerprint(to, 5, "ping()", []byte{1, 2}, 100)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestFingerprintFieldSensitivity(t *testing.T) {
	to := vaulttest.NewCondition().Address()
	base := Fingerprint(to, 5, "ping()", []byte{1, 2}, 100)

	variants := map[string][]byte{
		"target":    Fingerprint(vaulttest.NewCondition().Address(), 5, "ping()", []byte{1, 2}, 100),
		"value":     Fingerprint(to, 6, "ping()", []byte{1, 2}, 100),
		"func sig":  Fingerprint(to, 5, "pong()", []byte{1, 2}, 100),
		"data":      Fingerprint(to, 5, "ping()", []byte{1, 3}, 100),
		"timestamp": Fingerprint(to, 5, "ping()", []byte{1, 2}, 101),
	}
	for field, fp := range variants {
		if bytes.Equal(base, fp) {
			t.Errorf("changing %s did not change the fingerprint", field)
		}
	}
}

func TestFingerprintFieldBoundaries(t *testing.T) {
	// moving a byte between adjacent variable length fields must not
	// produce the same digest
	to := stronghold.Address(bytes.Repeat([]byte{7}, stronghold.AddressLength))
	a := Fingerprint(to, 0, "ab", []byte("c"), 0)
	b := Fingerprint(to, 0, "a", []byte("bc"), 0)
	assert.False(t, bytes.Equal(a, b))
}
