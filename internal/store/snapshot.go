package store

import (
	"github.com/pkg/errors"
	"github.com/shamaton/msgpack/v2"
)

// Snapshot is a serializable copy of every entry in a KV.
type Snapshot struct {
	Entries []Entry `msgpack:"entries"`
}

// Entry is one key-value pair of a Snapshot.
type Entry struct {
	Key   []byte `msgpack:"k"`
	Value []byte `msgpack:"v"`
}

// Export serializes the full contents of kv in key order.
func Export(kv KV) ([]byte, error) {
	it, err := kv.Iterator(nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open iterator")
	}
	defer it.Close()

	var snap Snapshot
	for ; it.Valid(); it.Next() {
		snap.Entries = append(snap.Entries, Entry{
			Key:   append([]byte(nil), it.Key()...),
			Value: append([]byte(nil), it.Value()...),
		})
	}
	if err := it.Error(); err != nil {
		return nil, errors.Wrap(err, "iterate")
	}
	return msgpack.Marshal(&snap)
}

// Import writes every entry of a snapshot produced by Export into kv and
// returns the number of entries written. Existing keys are overwritten.
func Import(kv KV, data []byte) (int, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return 0, errors.Wrap(err, "decode snapshot")
	}
	for i, e := range snap.Entries {
		if err := kv.Set(e.Key, e.Value); err != nil {
			return i, errors.Wrapf(err, "restore entry %d", i)
		}
	}
	return len(snap.Entries), nil
}
