package store

import "github.com/iov-one/stronghold"

// Move references for all storage types into this package for shorter names
// everywhere.

type KVStore = stronghold.KVStore
type Iterator = stronghold.Iterator
type CacheableKVStore = stronghold.CacheableKVStore
type KVCacheWrap = stronghold.KVCacheWrap
type CommitKVStore = stronghold.CommitKVStore
type CommitID = stronghold.CommitID

// ReadOnlyKVStore is the subset of KVStore that does not mutate state. Used
// as the backing layer of a cache wrap to emphasize that all writes must go
// through the batch.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing, the write-side counterpart
// of ReadOnlyKVStore.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Batch can write multiple operations to an underlying store at once. Write
// applies them all, ideally atomically.
type Batch interface {
	SetDeleter
	Write() error
}
