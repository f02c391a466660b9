package ownership

import (
	"github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
)

// genesisKey is where the owner configuration is expected in the genesis
// options.
const genesisKey = "ownership"

// FromGenesis builds the owner registry from the genesis options. Expected
// format:
//
//   "ownership": {
//     "owners": ["C0FFEE...", "bech32:strong1..."],
//     "threshold": 2
//   }
func FromGenesis(opts stronghold.Options) (*Registry, error) {
	var conf struct {
		Owners    []stronghold.Address `json:"owners"`
		Threshold uint32               `json:"threshold"`
	}
	if err := opts.ReadOptions(genesisKey, &conf); err != nil {
		return nil, errors.Wrap(err, "cannot read ownership genesis options")
	}
	reg, err := NewRegistry(conf.Owners, conf.Threshold)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ownership configuration")
	}
	return reg, nil
}
