package vaulttest

import (
	"crypto/rand"
	"testing"

	stronghold "github.com/iov-one/stronghold"
)

// NewCondition returns a random condition in the test extension namespace.
// Each call returns a different one.
func NewCondition() stronghold.Condition {
	data := make([]byte, 20)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return stronghold.NewCondition("test", "random", data)
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation, failing the test on bad input.
func ParseAddress(t testing.TB, encodedAddress string) stronghold.Address {
	t.Helper()

	addr, err := stronghold.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
