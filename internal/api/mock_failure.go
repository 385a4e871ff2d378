package api

/*
#include "bindings.h"
*/
import "C"

import (
	"context"
	"fmt"
	"sync"

	"github.com/contractsim/simulator/types"
)

// failAllocationAfter makes the accessor's temporary copy following n successful
// ones fail. -1 disables the hook.
func failAllocationAfter(n int) {
	C.fail_allocation_after(C.int(n))
}

/***** Mock types.Mutable ****/

// recordingStore wraps a store and records every call that reached it.
type recordingStore struct {
	types.Mutable

	mtx   sync.Mutex
	calls []string
	keys  [][]byte
}

func newRecordingStore(inner types.Mutable) *recordingStore {
	return &recordingStore{Mutable: inner}
}

func (r *recordingStore) record(op string, key []byte) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.calls = append(r.calls, op)
	r.keys = append(r.keys, key)
}

func (r *recordingStore) Calls() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return append([]string(nil), r.calls...)
}

// LastKey returns the key slice the callback was handed last, as received.
func (r *recordingStore) LastKey() []byte {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if len(r.keys) == 0 {
		return nil
	}
	return r.keys[len(r.keys)-1]
}

func (r *recordingStore) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	r.record("get", key)
	return r.Mutable.GetValue(ctx, key)
}

func (r *recordingStore) Insert(ctx context.Context, key []byte, value []byte) error {
	r.record("insert", key)
	return r.Mutable.Insert(ctx, key, value)
}

func (r *recordingStore) Remove(ctx context.Context, key []byte) error {
	r.record("remove", key)
	return r.Mutable.Remove(ctx, key)
}

// failingStore fails every operation with a fixed message.
type failingStore struct {
	msg string
}

func (f failingStore) GetValue(context.Context, []byte) ([]byte, error) {
	return nil, fmt.Errorf("%s", f.msg)
}

func (f failingStore) Insert(context.Context, []byte, []byte) error {
	return fmt.Errorf("%s", f.msg)
}

func (f failingStore) Remove(context.Context, []byte) error {
	return fmt.Errorf("%s", f.msg)
}

// insertLimitStore lets the first allowed inserts through and fails every later one.
type insertLimitStore struct {
	types.Mutable

	mtx     sync.Mutex
	allowed int
}

func (s *insertLimitStore) Insert(ctx context.Context, key []byte, value []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.allowed == 0 {
		return fmt.Errorf("insert limit reached")
	}
	s.allowed--
	return s.Mutable.Insert(ctx, key, value)
}

// panickingStore panics in every operation.
type panickingStore struct{}

func (panickingStore) GetValue(context.Context, []byte) ([]byte, error) { panic("get exploded") }

func (panickingStore) Insert(context.Context, []byte, []byte) error { panic("insert exploded") }

func (panickingStore) Remove(context.Context, []byte) error { panic("remove exploded") }

// scribblingStore overwrites every key it is handed after using it.
type scribblingStore struct {
	types.Mutable
}

func (s scribblingStore) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	v, err := s.Mutable.GetValue(ctx, key)
	for i := range key {
		key[i] = 0xff
	}
	return v, err
}
