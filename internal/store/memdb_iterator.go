package store

import (
	"context"

	"github.com/google/btree"
)

const (
	// Size of the channel buffer between traversal goroutine and iterator. Using an unbuffered
	// channel causes two context switches per item sent, while buffering allows more work per
	// context switch.
	chBufferSize = 64
)

// memDBIterator is a memDB iterator.
type memDBIterator struct {
	ch     <-chan *item
	cancel context.CancelFunc
	item   *item
	start  []byte
	end    []byte
}

var _ Iterator = (*memDBIterator)(nil)

// newMemDBIterator creates a new memDBIterator that iterates in ascending order.
func newMemDBIterator(db *MemDB, start, end []byte) *memDBIterator {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan *item, chBufferSize)
	iter := &memDBIterator{
		ch:     ch,
		cancel: cancel,
		start:  start,
		end:    end,
	}

	db.mtx.RLock()
	go func() {
		defer db.mtx.RUnlock()
		visitor := func(i btree.Item) bool {
			select {
			case <-ctx.Done():
				return false
			case ch <- i.(*item):
				return true
			}
		}
		switch {
		case start == nil && end == nil:
			db.btree.Ascend(visitor)
		case end == nil:
			db.btree.AscendGreaterOrEqual(newKey(start), visitor)
		case start == nil:
			db.btree.AscendLessThan(newKey(end), visitor)
		default:
			db.btree.AscendRange(newKey(start), newKey(end), visitor)
		}
		close(ch)
	}()

	// prime the iterator with the first value, if any
	if item, ok := <-ch; ok {
		iter.item = item
	}
	return iter
}

// Close implements Iterator.
func (i *memDBIterator) Close() error {
	i.cancel()
	// drain the channel so the traversal goroutine releases the read lock
	for range i.ch {
	}
	i.item = nil
	return nil
}

// Domain implements Iterator.
func (i *memDBIterator) Domain() (start []byte, end []byte) {
	return i.start, i.end
}

// Valid implements Iterator.
func (i *memDBIterator) Valid() bool {
	return i.item != nil
}

// Next implements Iterator.
func (i *memDBIterator) Next() {
	i.assertIsValid()
	item, ok := <-i.ch
	switch {
	case ok:
		i.item = item
	default:
		i.item = nil
	}
}

// Error implements Iterator.
func (*memDBIterator) Error() error {
	return nil
}

// Key implements Iterator.
func (i *memDBIterator) Key() []byte {
	i.assertIsValid()
	return i.item.key
}

// Value implements Iterator.
func (i *memDBIterator) Value() []byte {
	i.assertIsValid()
	return i.item.value
}

func (i *memDBIterator) assertIsValid() {
	if !i.Valid() {
		panic("iterator is invalid")
	}
}
