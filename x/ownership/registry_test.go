package ownership

import (
	"context"
	"encoding/json"
	"testing"

	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
	"github.com/iov-one/stronghold/vaulttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryValidation(t *testing.T) {
	a := vaulttest.NewCondition().Address()
	b := vaulttest.NewCondition().Address()

	cases := map[string]struct {
		owners    []stronghold.Address
		threshold uint32
		wantErr   *errors.Error
	}{
		"valid single owner": {
			owners:    []stronghold.Address{a},
			threshold: 1,
		},
		"valid two owners": {
			owners:    []stronghold.Address{a, b},
			threshold: 2,
		},
		"no owners": {
			owners:    nil,
			threshold: 1,
			wantErr:   errors.ErrEmpty,
		},
		"duplicated owner": {
			owners:    []stronghold.Address{a, b, a},
			threshold: 1,
			wantErr:   errors.ErrDuplicate,
		},
		"invalid owner address": {
			owners:    []stronghold.Address{a, {0x01}},
			threshold: 1,
			wantErr:   errors.ErrInput,
		},
		"zero threshold": {
			owners:    []stronghold.Address{a},
			threshold: 0,
			wantErr:   errors.ErrAmount,
		},
		"threshold above owner count": {
			owners:    []stronghold.Address{a, b},
			threshold: 3,
			wantErr:   errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			reg, err := NewRegistry(tc.owners, tc.threshold)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.threshold, reg.Threshold())
			assert.Len(t, reg.Owners(), len(tc.owners))
		})
	}
}

func TestRegistryIsOwner(t *testing.T) {
	a := vaulttest.NewCondition().Address()
	b := vaulttest.NewCondition().Address()
	stranger := vaulttest.NewCondition().Address()

	reg, err := NewRegistry([]stronghold.Address{a, b}, 1)
	require.NoError(t, err)

	assert.True(t, reg.IsOwner(a))
	assert.True(t, reg.IsOwner(b))
	assert.False(t, reg.IsOwner(stranger))
	assert.False(t, reg.IsOwner(nil))
}

func TestRegistryOwnersIsACopy(t *testing.T) {
	a := vaulttest.NewCondition().Address()
	reg, err := NewRegistry([]stronghold.Address{a}, 1)
	require.NoError(t, err)

	owners := reg.Owners()
	owners[0][0] ^= 0xff
	assert.True(t, reg.IsOwner(a))
}

func TestRegistryAuthorize(t *testing.T) {
	owner := vaulttest.NewCondition()
	stranger := vaulttest.NewCondition()

	reg, err := NewRegistry([]stronghold.Address{owner.Address()}, 1)
	require.NoError(t, err)

	auth := &vaulttest.CtxAuth{Key: "auth"}

	ctx := auth.SetConditions(context.Background(), owner)
	got, err := reg.Authorize(ctx, auth)
	require.NoError(t, err)
	assert.True(t, owner.Address().Equals(got))

	ctx = auth.SetConditions(context.Background(), stranger)
	_, err = reg.Authorize(ctx, auth)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestFromGenesis(t *testing.T) {
	a := vaulttest.NewCondition().Address()
	b := vaulttest.NewCondition().Address()

	raw, err := json.Marshal(map[string]interface{}{
		"owners":    []stronghold.Address{a, b},
		"threshold": 2,
	})
	require.NoError(t, err)
	opts := stronghold.Options{"ownership": raw}

	reg, err := FromGenesis(opts)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), reg.Threshold())
	assert.True(t, reg.IsOwner(a))
	assert.True(t, reg.IsOwner(b))
}

func TestNewRegistryAcceptsLargeOwnerSets(t *testing.T) {
	owners := make([]stronghold.Address, 150)
	for i := range owners {
		owners[i] = vaulttest.NewCondition().Address()
	}

	reg, err := NewRegistry(owners, 150)
	require.NoError(t, err)
	assert.Len(t, reg.Owners(), 150)
	assert.Equal(t, uint32(150), reg.Threshold())
}
