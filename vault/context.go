package vault

import (
	"context"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/x"
)

type contextKey int

const contextKeySigners contextKey = iota

func withSigners(ctx stronghold.Context, conds []stronghold.Condition) stronghold.Context {
	return context.WithValue(ctx, contextKeySigners, conds)
}

func signers(ctx stronghold.Context) []stronghold.Condition {
	val, _ := ctx.Value(contextKeySigners).([]stronghold.Condition)
	return val
}

// Authenticate implements the x.Authenticator interface over the signer
// conditions stored in the context by the vault facade.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions implements x.Authenticator.
func (Authenticate) GetConditions(ctx stronghold.Context) []stronghold.Condition {
	return signers(ctx)
}

// HasAddress implements x.Authenticator.
func (Authenticate) HasAddress(ctx stronghold.Context, addr stronghold.Address) bool {
	for _, s := range signers(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
