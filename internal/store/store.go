// Package store provides the key-value stores that back Go-hosted simulator state.
package store

import (
	dbm "github.com/cometbft/cometbft-db"
	"github.com/pkg/errors"
)

// Backend selects the storage engine behind a KV.
type Backend string

const (
	// BackendMemory is the btree based MemDB in this package.
	BackendMemory Backend = "memory"
	// BackendGoLevelDB persists to disk through cometbft-db.
	BackendGoLevelDB Backend = "goleveldb"
	// BackendMemDB is cometbft-db's in-memory database.
	BackendMemDB Backend = "memdb"
)

// Iterator walks a key range in ascending order.
type Iterator = dbm.Iterator

// KV is the subset of dbm.DB the simulator needs. Any dbm.DB satisfies it.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	// Iterator returns an iterator over [start, end). nil bounds are open.
	Iterator(start, end []byte) (Iterator, error)
	Close() error
}

var _ KV = (dbm.DB)(nil)

// Open creates a KV for backend. name and dir are only used by persistent backends.
func Open(backend Backend, name, dir string) (KV, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemDB(), nil
	case BackendMemDB:
		return dbm.NewMemDB(), nil
	case BackendGoLevelDB:
		if dir == "" {
			return nil, errors.New("goleveldb backend requires a data directory")
		}
		db, err := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
		if err != nil {
			return nil, errors.Wrapf(err, "open goleveldb %q in %s", name, dir)
		}
		return db, nil
	default:
		return nil, errors.Errorf("unknown store backend %q", backend)
	}
}
