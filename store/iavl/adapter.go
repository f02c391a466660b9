package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/iov-one/stronghold/store"
)

// the cache size of the iavl tree, same as the tendermint default
const cacheSize = 10000

// CommitStore manages an iavl committed state.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with a leveldb disk backing under the
// given directory.
func NewCommitStore(path, name string) (CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, path)
	if err != nil {
		return CommitStore{}, err
	}
	return CommitStore{tree: iavl.NewMutableTree(db, cacheSize)}, nil
}

// MemCommitStore creates a new store without disk backing, useful for tests.
func MemCommitStore() CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(dbm.NewMemDB(), cacheSize)}
}

// Get returns the value at the last committed state. Returns nil iff key
// doesn't exist.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit saves the next version to disk, and returns its info.
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, err
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version. If there was a crash
// during the last commit, it is guaranteed to return a stable state, even if
// older.
func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return err
}

// LatestVersion returns info on the latest version saved to disk.
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions on.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return Cache{
		parent: s,
		tree:   s.tree,
	}
}

// Cache is the working state on top of the committed tree. Writes accumulate
// in the iavl working tree and become durable on Write, which commits the
// next version. Discard rolls the working tree back to the last saved
// version.
type Cache struct {
	parent CommitStore
	tree   *iavl.MutableTree
}

var _ store.KVCacheWrap = Cache{}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (c Cache) Get(key []byte) ([]byte, error) {
	_, val := c.tree.Get(key)
	return val, nil
}

// Has checks if a key exists. Panics on nil key.
func (c Cache) Has(key []byte) (bool, error) {
	return c.tree.Has(key), nil
}

// Set adds a new value to the working tree.
func (c Cache) Set(key, value []byte) error {
	c.tree.Set(key, value)
	return nil
}

// Delete removes from the working tree.
func (c Cache) Delete(key []byte) error {
	c.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that can write multiple ops at once.
func (c Cache) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(c)
}

// CacheWrap wraps us once again, with a btree overlay.
func (c Cache) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(c, c.NewBatch(), nil)
}

// Write commits the working state as the next version.
func (c Cache) Write() error {
	_, err := c.parent.Commit()
	return err
}

// Discard drops all uncommitted changes from the working tree.
func (c Cache) Discard() {
	c.tree.Rollback()
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (c Cache) Iterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	add := func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	}
	c.tree.IterateRange(start, end, true, add)
	return store.NewSliceIterator(res), nil
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
func (c Cache) ReverseIterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	add := func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	}
	c.tree.IterateRange(start, end, false, add)
	return store.NewSliceIterator(res), nil
}
