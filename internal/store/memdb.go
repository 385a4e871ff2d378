package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/pkg/errors"
)

// bTreeDegree is the B-Tree degree used by MemDB.
const bTreeDegree = 32

var (
	// ErrKeyEmpty is returned when attempting to use an empty or nil key.
	ErrKeyEmpty = errors.New("key cannot be empty")

	// ErrValueNil is returned when attempting to set a nil value.
	ErrValueNil = errors.New("value cannot be nil")
)

// item is a btree.Item with byte slices as keys and values
type item struct {
	key   []byte
	value []byte
}

// Less implements btree.Item.
func (i *item) Less(other btree.Item) bool {
	// this considers nil == []byte{}, but that's ok since we handle nil endpoints
	// in iterators specially anyway
	return bytes.Compare(i.key, other.(*item).key) == -1
}

// newKey creates a new key item.
func newKey(key []byte) *item {
	return &item{key: key}
}

// newPair creates a new pair item.
func newPair(key, value []byte) *item {
	return &item{key: key, value: value}
}

// MemDB is an in-memory KV backed by a B-tree. It is safe for concurrent use.
type MemDB struct {
	mtx   sync.RWMutex
	btree *btree.BTree
}

var _ KV = (*MemDB)(nil)

// NewMemDB creates a new in-memory database.
func NewMemDB() *MemDB {
	return &MemDB{
		btree: btree.New(bTreeDegree),
	}
}

// Get implements KV.
func (db *MemDB) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrKeyEmpty
	}
	db.mtx.RLock()
	defer db.mtx.RUnlock()

	i := db.btree.Get(newKey(key))
	if i != nil {
		return i.(*item).value, nil
	}
	return nil, nil
}

// Set implements KV.
func (db *MemDB) Set(key []byte, value []byte) error {
	if len(key) == 0 {
		return ErrKeyEmpty
	}
	if value == nil {
		return ErrValueNil
	}
	db.mtx.Lock()
	defer db.mtx.Unlock()

	db.btree.ReplaceOrInsert(newPair(key, value))
	return nil
}

// Delete implements KV.
func (db *MemDB) Delete(key []byte) error {
	if len(key) == 0 {
		return ErrKeyEmpty
	}
	db.mtx.Lock()
	defer db.mtx.Unlock()

	db.btree.Delete(newKey(key))
	return nil
}

// Len returns the number of stored keys.
func (db *MemDB) Len() int {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	return db.btree.Len()
}

// Iterator implements KV.
// Takes out a read-lock on the database until the iterator is closed.
func (db *MemDB) Iterator(start, end []byte) (Iterator, error) {
	if (start != nil && len(start) == 0) || (end != nil && len(end) == 0) {
		return nil, ErrKeyEmpty
	}
	return newMemDBIterator(db, start, end), nil
}

// Close implements KV.
func (*MemDB) Close() error {
	return nil
}
