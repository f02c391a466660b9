package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/iov-one/stronghold/errors"
)

///////////////////////////////////////////////////////
// From btree items to Iterator

type btreeIter struct {
	data    btree.Item
	hasMore bool
	read    <-chan btree.Item
	stop    chan<- struct{}
	once    sync.Once
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			close(read)
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Ascend(insert)
		} else if start == nil { // end != nil
			bt.AscendLessThan(bkey{end}, insert)
		} else if end == nil { // start != nil
			bt.AscendGreaterOrEqual(bkey{start}, insert)
		} else { // both != nil
			bt.AscendRange(bkey{start}, bkey{end}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			close(read)
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Descend(insert)
		} else if start == nil { // end != nil
			bt.DescendLessOrEqual(bkeyLess{end}, insert)
		} else if end == nil { // start != nil
			bt.DescendGreaterThan(bkeyLess{start}, insert)
		} else { // both != nil
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

func (b *btreeIter) wrap(parent Iterator, reverse bool) (*itemIter, error) {
	iter := &itemIter{
		wrap:    b,
		parent:  parent,
		reverse: reverse,
	}
	if err := iter.advanceParent(); err != nil {
		iter.Release()
		return nil, err
	}
	return iter, nil
}

func (b *btreeIter) next() {
	b.data, b.hasMore = <-b.read
}

func (b *btreeIter) close() {
	b.once.Do(func() {
		b.stop <- struct{}{}
	})
}

// get requires this is valid, gets what we are pointing at
func (b *btreeIter) get() keyer {
	return b.data.(keyer)
}

func (b *btreeIter) valid() bool {
	return b.hasMore
}

// itemIter merges the btree overlay with the parent iterator, taking into
// consideration overwrites and deletes. The parent head is buffered one item
// ahead so that both streams can be compared by key.
type itemIter struct {
	wrap   *btreeIter
	parent Iterator

	parentKey   []byte
	parentValue []byte
	parentDone  bool

	// reverse flips the key comparison for descending iteration.
	reverse bool
}

var _ Iterator = (*itemIter)(nil)

// advanceParent buffers the next parent item, marking the parent exhausted
// on ErrIteratorDone.
func (i *itemIter) advanceParent() error {
	if i.parent == nil {
		i.parentDone = true
		return nil
	}
	key, value, err := i.parent.Next()
	switch {
	case err == nil:
		i.parentKey, i.parentValue = key, value
		return nil
	case errors.ErrIteratorDone.Is(err):
		i.parentDone = true
		i.parentKey, i.parentValue = nil, nil
		return nil
	default:
		return err
	}
}

// Next returns the next key/value pair of the merged iteration, skipping
// all entries marked deleted in the overlay. It returns ErrIteratorDone when
// both sources are exhausted.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		switch i.firstKey() {
		case none:
			return nil, nil, errors.ErrIteratorDone
		case us:
			item := i.wrap.get()
			i.wrap.next()
			if _, deleted := item.(deletedItem); deleted {
				continue
			}
			return item.Key(), item.(setItem).value, nil
		case both:
			item := i.wrap.get()
			i.wrap.next()
			// parent holds the same key, it is shadowed
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			if _, deleted := item.(deletedItem); deleted {
				continue
			}
			return item.Key(), item.(setItem).value, nil
		case parent:
			key, value := i.parentKey, i.parentValue
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		}
	}
}

// Release the iterator and all its resources.
func (i *itemIter) Release() {
	if i.parent != nil {
		i.parent.Release()
	}
	i.wrap.close()
}

// firstKey selects the source with the lowest key, if any.
func (i *itemIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if i.parentDone {
		if !i.wrap.valid() {
			return none
		}
		return us
	} else if !i.wrap.valid() {
		return parent
	}

	// both are valid... compare keys....
	cmp := bytes.Compare(i.parentKey, i.wrap.get().Key())
	if i.reverse {
		cmp = -cmp
	}
	if cmp < 0 {
		return parent
	} else if cmp > 0 {
		return us
	}
	return both
}
