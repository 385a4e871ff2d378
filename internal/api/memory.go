package api

/*
#include "bindings.h"
*/
import "C"

import (
	"unsafe"

	"github.com/contractsim/simulator/types"
)

// bytesPtr returns a pointer to the first element of s, or nil for an empty slice.
// The slice is managed by Go; use runtime.KeepAlive to keep it alive across the C call.
func bytesPtr(s []byte) cu8_ptr {
	// In Go, accessing the 0-th element of an empty array triggers a panic. That is why in the case
	// of an empty `[]byte` we can't get the internal heap pointer to the underlying array.
	if len(s) == 0 {
		return cu8_ptr(nil)
	}
	return cu8_ptr(unsafe.Pointer(&s[0]))
}

// newCBytes copies data into a malloc'ed buffer that the receiver must free.
// Empty data yields a null buffer of length zero.
func newCBytes(data []byte) C.Bytes {
	if len(data) == 0 {
		return C.Bytes{data: cu8_ptr(nil), length: cusize(0)}
	}
	return C.Bytes{
		data:   cu8_ptr(C.CBytes(data)),
		length: cusize(len(data)),
	}
}

// readBytes copies a caller owned buffer into Go memory. It never frees.
func readBytes(b C.Bytes) []byte {
	if b.data == nil || b.length == 0 {
		return nil
	}
	// C.GoBytes create a copy (https://stackoverflow.com/a/40950744/2013738)
	return C.GoBytes(unsafe.Pointer(b.data), C.int(b.length))
}

// copyAndFreeBytes copies a callee allocated buffer into Go memory and frees it.
func copyAndFreeBytes(b C.Bytes) []byte {
	out := readBytes(b)
	freeBytes(b)
	return out
}

func freeBytes(b C.Bytes) {
	if b.data != nil {
		C.free(unsafe.Pointer(b.data))
	}
}

// takeError converts a callee allocated error string into a typed error and frees it.
// A null string means success.
func takeError(cerr *C.char) error {
	if cerr == nil {
		return nil
	}
	msg := C.GoString(cerr)
	C.free(unsafe.Pointer(cerr))
	return types.ParseStateError(msg)
}

// takeBytesWithError consumes a get result. Any payload next to an error is discarded.
func takeBytesWithError(res C.BytesWithError) ([]byte, error) {
	if res.error != nil {
		freeBytes(res.bytes)
		return nil, takeError(res.error)
	}
	return copyAndFreeBytes(res.bytes), nil
}

// newCError returns err as a malloc'ed C string, or nil when err is nil.
// The message never collides with the accessor's own error strings.
func newCError(err error) *C.char {
	if err == nil {
		return nil
	}
	return C.CString(types.BackendMessage(err))
}

func readAddress(a *C.Address) types.Address {
	var addr types.Address
	for i := range addr {
		addr[i] = byte(a.address[i])
	}
	return addr
}

func cAddress(addr types.Address) C.Address {
	var out C.Address
	for i, b := range addr {
		out.address[i] = C.uchar(b)
	}
	return out
}

// OutstandingCopies is the number of temporary argument copies made by the
// accessor that have not been released yet. It is zero between calls.
func OutstandingCopies() int64 {
	return int64(C.outstanding_copies())
}
