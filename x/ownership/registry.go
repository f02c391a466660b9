package ownership

import (
	"github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
	"github.com/iov-one/stronghold/x"
)

// Registry is the fixed set of principals allowed to operate the vault,
// together with the approval threshold required by the multisig ledger.
//
// The set is established at construction and is immutable afterwards. It is
// guaranteed to be non-empty, to contain no duplicate and no nil entry, and
// the threshold is guaranteed to be a positive number not greater than the
// set size.
type Registry struct {
	owners    []stronghold.Address
	threshold uint32
}

// NewRegistry validates the given owner set and threshold and returns an
// immutable registry of them.
func NewRegistry(owners []stronghold.Address, threshold uint32) (*Registry, error) {
	if len(owners) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "owners")
	}

	cpy := make([]stronghold.Address, len(owners))
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return nil, errors.Wrapf(err, "owner #%d", i)
		}
		for j := 0; j < i; j++ {
			if cpy[j].Equals(o) {
				return nil, errors.Wrapf(errors.ErrDuplicate, "owner #%d", i)
			}
		}
		cpy[i] = append(stronghold.Address{}, o...)
	}

	if threshold < 1 {
		return nil, errors.Wrap(errors.ErrAmount, "threshold must be positive")
	}
	if int(threshold) > len(cpy) {
		return nil, errors.Wrap(errors.ErrAmount, "threshold greater than owner count")
	}

	return &Registry{owners: cpy, threshold: threshold}, nil
}

// IsOwner returns true if the given address belongs to the owner set.
func (r *Registry) IsOwner(addr stronghold.Address) bool {
	for _, o := range r.owners {
		if o.Equals(addr) {
			return true
		}
	}
	return false
}

// Owners returns a copy of the owner set, in construction order.
func (r *Registry) Owners() []stronghold.Address {
	cpy := make([]stronghold.Address, len(r.owners))
	copy(cpy, r.owners)
	return cpy
}

// Threshold returns the number of distinct owner approvals required to
// execute a multisig transaction.
func (r *Registry) Threshold() uint32 {
	return r.threshold
}

// Authorize ensures that the context is authenticated as any of the owners.
// It returns the matching owner address, or ErrUnauthorized.
func (r *Registry) Authorize(ctx stronghold.Context, auth x.Authenticator) (stronghold.Address, error) {
	for _, o := range r.owners {
		if auth.HasAddress(ctx, o) {
			return o, nil
		}
	}
	return nil, errors.Wrap(errors.ErrUnauthorized, "not an owner")
}
