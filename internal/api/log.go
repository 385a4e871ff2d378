// Package api is the cgo boundary of the simulator. It owns the C accessor that
// copies buffers across the boundary and guards every callback, the Go callbacks
// that serve Go-hosted state through it, and the functions exported to hosts.
package api

import (
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerMu sync.RWMutex
	logger   = zerolog.Nop()
)

// SetLogger installs the logger used by callbacks and exported functions.
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func log() *zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	l := logger
	return &l
}
