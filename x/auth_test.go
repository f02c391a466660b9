package x

import (
	"context"
	"testing"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/vaulttest"
	"github.com/stretchr/testify/assert"
)

func TestChainAuthCombinesAuthenticators(t *testing.T) {
	a := vaulttest.NewCondition()
	b := vaulttest.NewCondition()
	c := vaulttest.NewCondition()

	auth := ChainAuth(
		&vaulttest.Auth{Signer: a},
		&vaulttest.Auth{Signers: []stronghold.Condition{b}},
	)
	ctx := context.Background()

	conds := auth.GetConditions(ctx)
	assert.Len(t, conds, 2)

	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.True(t, auth.HasAddress(ctx, b.Address()))
	assert.False(t, auth.HasAddress(ctx, c.Address()))
}

func TestMainSigner(t *testing.T) {
	a := vaulttest.NewCondition()
	b := vaulttest.NewCondition()
	ctx := context.Background()

	auth := ChainAuth(&vaulttest.Auth{Signers: []stronghold.Condition{a, b}})
	assert.Equal(t, a, MainSigner(ctx, auth))

	assert.Nil(t, MainSigner(ctx, ChainAuth(&vaulttest.Auth{})))
}

func TestGetAddresses(t *testing.T) {
	a := vaulttest.NewCondition()
	b := vaulttest.NewCondition()
	ctx := context.Background()

	addrs := GetAddresses(ctx, &vaulttest.Auth{Signers: []stronghold.Condition{a, b}})
	assert.Equal(t, []stronghold.Address{a.Address(), b.Address()}, addrs)
}

func TestHasAllAndAnyAddress(t *testing.T) {
	a := vaulttest.NewCondition()
	b := vaulttest.NewCondition()
	stranger := vaulttest.NewCondition()
	ctx := context.Background()

	auth := &vaulttest.Auth{Signers: []stronghold.Condition{a, b}}

	assert.True(t, HasAllAddresses(ctx, auth, []stronghold.Address{a.Address(), b.Address()}))
	assert.False(t, HasAllAddresses(ctx, auth, []stronghold.Address{a.Address(), stranger.Address()}))

	assert.True(t, AnyAddress(ctx, auth, []stronghold.Address{stranger.Address(), b.Address()}))
	assert.False(t, AnyAddress(ctx, auth, []stronghold.Address{stranger.Address()}))
}
