package cash

import (
	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
)

// genesisKey is where the initial balances are expected in the genesis
// options.
const genesisKey = "cash"

// Initializer credits the accounts listed in the genesis options. Expected
// format:
//
//   "cash": [
//     {"address": "C0FFEE...", "balance": 100}
//   ]
type Initializer struct{}

var _ stronghold.Initializer = (*Initializer)(nil)

// FromGenesis implements stronghold.Initializer.
func (Initializer) FromGenesis(opts stronghold.Options, kv stronghold.KVStore) error {
	var accounts []struct {
		Address stronghold.Address `json:"address"`
		Balance int64              `json:"balance"`
	}
	if err := opts.ReadOptions(genesisKey, &accounts); err != nil {
		return errors.Wrap(err, "cannot read cash genesis options")
	}
	ctrl := NewController()
	for i, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if err := ctrl.IssueCoins(kv, acc.Address, acc.Balance); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
