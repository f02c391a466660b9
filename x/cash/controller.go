package cash

import (
	stronghold "github.com/iov-one/stronghold"
	"github.com/iov-one/stronghold/errors"
)

var walletPrefix = []byte("cash:")

// walletKey returns the storage key for the wallet of the given address.
func walletKey(addr stronghold.Address) []byte {
	return append(walletPrefix, addr...)
}

// Controller moves funds between accounts. All arithmetic is overflow
// checked and every mutation is total, a returned error means the store
// was not touched.
type Controller interface {
	Balance(db stronghold.KVStore, addr stronghold.Address) (int64, error)
	MoveCoins(db stronghold.KVStore, src, dst stronghold.Address, amount int64) error
	IssueCoins(db stronghold.KVStore, dst stronghold.Address, amount int64) error
}

// NewController returns a controller backed by plain wallet records.
func NewController() Controller {
	return controller{}
}

type controller struct{}

var _ Controller = controller{}

// Balance returns the funds held by addr, zero if no wallet exists.
func (c controller) Balance(db stronghold.KVStore, addr stronghold.Address) (int64, error) {
	w, err := loadWallet(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins transfers amount from src to dst. It fails without side
// effects when src holds less than amount.
func (c controller) MoveCoins(db stronghold.KVStore, src, dst stronghold.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	sender, err := loadWallet(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, requested %d", sender.Balance, amount)
	}
	recipient, err := loadWallet(db, dst)
	if err != nil {
		return err
	}
	total, err := add64(recipient.Balance, amount)
	if err != nil {
		return err
	}
	sender.Balance -= amount
	recipient.Balance = total
	if err := saveWallet(db, src, sender); err != nil {
		return err
	}
	return saveWallet(db, dst, recipient)
}

// IssueCoins credits dst with amount out of thin air.
func (c controller) IssueCoins(db stronghold.KVStore, dst stronghold.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	recipient, err := loadWallet(db, dst)
	if err != nil {
		return err
	}
	total, err := add64(recipient.Balance, amount)
	if err != nil {
		return err
	}
	recipient.Balance = total
	return saveWallet(db, dst, recipient)
}

func loadWallet(db stronghold.KVStore, addr stronghold.Address) (*Wallet, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "wallet address")
	}
	raw, err := db.Get(walletKey(addr))
	if err != nil {
		return nil, errors.Wrap(err, "load wallet")
	}
	w := new(Wallet)
	if raw != nil {
		if err := w.Unmarshal(raw); err != nil {
			return nil, errors.Wrap(err, "parse wallet")
		}
	}
	return w, nil
}

func saveWallet(db stronghold.KVStore, addr stronghold.Address, w *Wallet) error {
	if w.Balance == 0 {
		return db.Delete(walletKey(addr))
	}
	raw, err := w.Marshal()
	if err != nil {
		return errors.Wrap(err, "serialize wallet")
	}
	return db.Set(walletKey(addr), raw)
}

// add64 adds two int64 values, failing on overflow.
func add64(a, b int64) (int64, error) {
	c := a + b
	if b > 0 && c < a {
		return 0, errors.Wrap(errors.ErrOverflow, "int64 addition")
	}
	if b < 0 && c > a {
		return 0, errors.Wrap(errors.ErrOverflow, "int64 addition")
	}
	return c, nil
}
