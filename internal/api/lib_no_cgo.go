//go:build !cgo

package api

import (
	"context"
	"errors"
	"unsafe"

	"github.com/contractsim/simulator/types"
)

// This file provides stub implementations for the handle type, allowing the
// package to compile even when CGo is disabled. Every operation fails.

var errNoCgo = errors.New("simulator compiled without CGo support")

// Mutable is a stub implementation for non-CGo builds.
type Mutable struct{}

var _ types.Mutable = (*Mutable)(nil)

// NewMutable is a stub implementation for non-CGo builds.
func NewMutable(types.Mutable) *Mutable { return &Mutable{} }

// WrapMutable is a stub implementation for non-CGo builds.
func WrapMutable(unsafe.Pointer) *Mutable { return &Mutable{} }

// Release is a no-op for non-CGo builds.
func (*Mutable) Release() {}

// GetValue is a stub implementation for non-CGo builds.
func (*Mutable) GetValue(context.Context, []byte) ([]byte, error) { return nil, errNoCgo }

// Insert is a stub implementation for non-CGo builds.
func (*Mutable) Insert(context.Context, []byte, []byte) error { return errNoCgo }

// Remove is a stub implementation for non-CGo builds.
func (*Mutable) Remove(context.Context, []byte) error { return errNoCgo }

// HostCreateContract is a stub implementation for non-CGo builds.
func (*Mutable) HostCreateContract(string) (types.CreateContractResponse, error) {
	return types.CreateContractResponse{}, errNoCgo
}

// HostCallContract is a stub implementation for non-CGo builds.
func (*Mutable) HostCallContract(types.CallContext) (types.CallContractResponse, error) {
	return types.CallContractResponse{}, errNoCgo
}

// HostBalance is a stub implementation for non-CGo builds.
func (*Mutable) HostBalance(types.Address) uint64 { return 0 }

// HostSetBalance is a no-op for non-CGo builds.
func (*Mutable) HostSetBalance(types.Address, uint64) {}

// OutstandingCopies is always zero for non-CGo builds.
func OutstandingCopies() int64 { return 0 }
