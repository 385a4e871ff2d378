package api

/*
#include "bindings.h"

BytesWithError cGetValue_cgo(void* data, Bytes key);
char* cInsertValue_cgo(void* data, Bytes key, Bytes value);
char* cRemoveValue_cgo(void* data, Bytes key);
*/
import "C"

import (
	"context"
	"math"
	"runtime"
	"unsafe"

	"github.com/contractsim/simulator/internal/metrics"
	"github.com/contractsim/simulator/types"
)

var bridgeCalls = metrics.LazyLoadCounterVec("bridge_calls_total", []string{"op", "outcome"})

// callbackSet selects which callbacks a Mutable is built with.
type callbackSet uint8

const (
	bindGet callbackSet = 1 << iota
	bindInsert
	bindRemove

	bindAll = bindGet | bindInsert | bindRemove
)

// Mutable is a state handle that reaches its backing state only through the C
// accessor, exactly like a host of the shared library does. Every call copies
// its arguments into buffers owned by the accessor, which the callback never
// keeps, and every result is copied back into Go memory.
//
// A Mutable is not safe for concurrent use with Release.
type Mutable struct {
	cm C.Mutable
	// handle is the registry id for handles built by NewMutable, 0 for wrapped ones
	handle uint64
}

var _ types.Mutable = (*Mutable)(nil)

// NewMutable registers st and returns a handle whose callbacks serve it.
// Release the handle when done.
func NewMutable(st types.Mutable) *Mutable {
	return newPartialMutable(st, bindAll)
}

func newPartialMutable(st types.Mutable, bind callbackSet) *Mutable {
	id := registerHandle(st)
	stateObj := C.malloc(C.size_t(unsafe.Sizeof(cu64(0))))
	*(*cu64)(stateObj) = cu64(id)

	var (
		getCb    C.GetStateCallback
		insertCb C.InsertStateCallback
		removeCb C.RemoveStateCallback
	)
	if bind&bindGet != 0 {
		getCb = (C.GetStateCallback)(C.cGetValue_cgo)
	}
	if bind&bindInsert != 0 {
		insertCb = (C.InsertStateCallback)(C.cInsertValue_cgo)
	}
	if bind&bindRemove != 0 {
		removeCb = (C.RemoveStateCallback)(C.cRemoveValue_cgo)
	}

	return &Mutable{
		cm:     C.new_mutable(stateObj, getCb, insertCb, removeCb),
		handle: id,
	}
}

// WrapMutable wraps a Mutable struct built by a C host. The struct is copied;
// the host keeps ownership of its state object.
func WrapMutable(ptr unsafe.Pointer) *Mutable {
	return wrapMutable((*C.Mutable)(ptr))
}

func wrapMutable(cm *C.Mutable) *Mutable {
	return &Mutable{cm: *cm}
}

// Release unregisters the state behind a handle built by NewMutable and frees
// its state object. It is a no-op on wrapped handles and on repeated calls.
// Calls made after Release fail with a backend error.
func (m *Mutable) Release() {
	if m == nil || m.handle == 0 {
		return
	}
	releaseStateObj(m.cm.stateObj)
	m.cm.stateObj = nil
	m.handle = 0
}

// releaseStateObj drops the registry entry named by a state object and frees it.
func releaseStateObj(stateObj unsafe.Pointer) {
	if stateObj == nil {
		return
	}
	releaseHandle(uint64(*(*cu64)(stateObj)))
	C.free(stateObj)
}

func (m *Mutable) cptr() *C.Mutable {
	if m == nil {
		return nil
	}
	return &m.cm
}

// GetValue returns the value stored under key, or nil when there is none.
func (m *Mutable) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return m.getValue(key, len(key))
}

// Insert stores value under key. Both must be non-empty.
func (m *Mutable) Insert(_ context.Context, key []byte, value []byte) error {
	return m.insert(key, len(key), value, len(value))
}

// Remove deletes key. key must be non-empty.
func (m *Mutable) Remove(_ context.Context, key []byte) error {
	return m.remove(key, len(key))
}

// The raw variants take lengths separately so that every argument combination
// the accessor guards against can be expressed. A length beyond the slice is
// rejected here, as the accessor would read past the buffer.

func (m *Mutable) getValue(key []byte, keyLen int) ([]byte, error) {
	if err := checkLength(key, keyLen); err != nil {
		return nil, observe("get", err)
	}
	res := C.get_value(m.cptr(), bytesPtr(key), cint(keyLen))
	runtime.KeepAlive(key)
	value, err := takeBytesWithError(res)
	return value, observe("get", err)
}

func (m *Mutable) insert(key []byte, keyLen int, value []byte, valueLen int) error {
	if err := checkLength(key, keyLen); err != nil {
		return observe("insert", err)
	}
	if err := checkLength(value, valueLen); err != nil {
		return observe("insert", err)
	}
	cerr := C.insert_value(m.cptr(), bytesPtr(key), cint(keyLen), bytesPtr(value), cint(valueLen))
	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
	return observe("insert", takeError(cerr))
}

func (m *Mutable) remove(key []byte, keyLen int) error {
	if err := checkLength(key, keyLen); err != nil {
		return observe("remove", err)
	}
	cerr := C.remove_value(m.cptr(), bytesPtr(key), cint(keyLen))
	runtime.KeepAlive(key)
	return observe("remove", takeError(cerr))
}

// checkLength validates a buffer/length pair before it crosses into C, where
// lengths are C ints.
func checkLength(buf []byte, n int) error {
	if n > math.MaxInt32 {
		return types.InvalidArgument{Reason: "length exceeds C int range"}
	}
	if buf != nil && n > len(buf) {
		return types.InvalidArgument{Reason: "length exceeds buffer"}
	}
	return nil
}

// observe records the outcome of an accessor call and passes err through.
func observe(op string, err error) error {
	bridgeCalls().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome(err)})
	if err != nil {
		log().Debug().Str("op", op).Str("kind", outcome(err)).Err(err).Msg("state accessor call failed")
	}
	return err
}

func outcome(err error) string {
	switch err.(type) {
	case nil:
		return "ok"
	case types.InvalidArgument:
		return "invalid_argument"
	case types.AllocationFailure:
		return "allocation_failure"
	case types.UnboundCallback:
		return "unbound_callback"
	default:
		return "backend_failure"
	}
}
