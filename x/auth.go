package x

import (
	"github.com/iov-one/stronghold"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hard-coding
// one for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled, you may want the
	// GetAddresses helper.
	GetConditions(stronghold.Context) []stronghold.Condition

	// HasAddress checks if any condition matches this address.
	HasAddress(stronghold.Context, stronghold.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators.
func (m MultiAuth) GetConditions(ctx stronghold.Context) []stronghold.Condition {
	var res []stronghold.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this address.
func (m MultiAuth) HasAddress(ctx stronghold.Context, addr stronghold.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator.
func GetAddresses(ctx stronghold.Context, auth Authenticator) []stronghold.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]stronghold.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx stronghold.Context, auth Authenticator) stronghold.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are also in the
// context.
func HasAllAddresses(ctx stronghold.Context, auth Authenticator, required []stronghold.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// AnyAddress returns true if at least one of the given addresses is
// authenticated in the context.
func AnyAddress(ctx stronghold.Context, auth Authenticator, addrs []stronghold.Address) bool {
	for _, a := range addrs {
		if auth.HasAddress(ctx, a) {
			return true
		}
	}
	return false
}
