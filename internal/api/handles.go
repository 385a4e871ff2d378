package api

import (
	"sync"
	"sync/atomic"

	"github.com/contractsim/simulator/internal/metrics"
	"github.com/contractsim/simulator/types"
)

// stateHandles maps the id stored in a Mutable's state object to the Go state behind it.
var stateHandles sync.Map

// this is a global counter for creating handle IDs
var latestHandleID atomic.Uint64

var openHandles = metrics.LazyLoadGauge("open_state_handles")

// registerHandle stores st and returns its id. Ids start at 1, so a zeroed state
// object never resolves.
func registerHandle(st types.Mutable) uint64 {
	id := latestHandleID.Add(1)
	stateHandles.Store(id, st)
	openHandles().Add(1)
	return id
}

func lookupHandle(id uint64) (types.Mutable, bool) {
	st, ok := stateHandles.Load(id)
	if !ok {
		return nil, false
	}
	return st.(types.Mutable), true
}

// releaseHandle forgets id. It reports whether id was registered.
func releaseHandle(id uint64) bool {
	_, didExist := stateHandles.LoadAndDelete(id)
	if didExist {
		openHandles().Add(-1)
	}
	return didExist
}
