package api

import (
	"context"
	"sync"

	"github.com/contractsim/simulator/internal/contract"
)

// simContext is used for every call made through the exported functions.
var simContext = context.Background()

var (
	engineMu sync.RWMutex
	engine   contract.Engine
)

// SetEngine registers the engine CallContract dispatches to. Passing nil removes it.
func SetEngine(e contract.Engine) {
	engineMu.Lock()
	defer engineMu.Unlock()
	engine = e
}

func currentEngine() contract.Engine {
	engineMu.RLock()
	defer engineMu.RUnlock()
	return engine
}

var (
	inspectorOnce sync.Once
	inspector     *contract.Inspector
)

// sharedInspector lives as long as the process.
func sharedInspector() *contract.Inspector {
	inspectorOnce.Do(func() {
		inspector = contract.NewInspector(simContext)
	})
	return inspector
}
