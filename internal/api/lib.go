package api

// #include <stdlib.h>
// #include "bindings.h"
import "C"

import "unsafe"

// Value types
type (
	cint   = C.int
	cusize = C.size_t
	cu8    = C.uint8_t
	cu64   = C.uint64_t
)

// Pointers
type cu8_ptr = *C.uint8_t

// abiLayout reports sizes and offsets of the boundary structs as the C compiler sees them.
type abiLayout struct {
	BytesSize        uintptr
	BytesWithErrSize uintptr
	AddressSize      uintptr
	MutableSize      uintptr

	CallContextSize      uintptr
	CallContextHeight    uintptr
	CallContextTimestamp uintptr
	CallContextMethod    uintptr
	CallContextParams    uintptr
	CallContextMaxGas    uintptr

	CallResponseFuel      uintptr
	CreateResponseAddress uintptr
}

func currentABILayout() abiLayout {
	var cc C.SimulatorCallContext
	var call C.CallContractResponse
	var create C.CreateContractResponse
	return abiLayout{
		BytesSize:        unsafe.Sizeof(C.Bytes{}),
		BytesWithErrSize: unsafe.Sizeof(C.BytesWithError{}),
		AddressSize:      unsafe.Sizeof(C.Address{}),
		MutableSize:      unsafe.Sizeof(C.Mutable{}),

		CallContextSize:      unsafe.Sizeof(cc),
		CallContextHeight:    unsafe.Offsetof(cc.height),
		CallContextTimestamp: unsafe.Offsetof(cc.timestamp),
		CallContextMethod:    unsafe.Offsetof(cc.method),
		CallContextParams:    unsafe.Offsetof(cc.params),
		CallContextMaxGas:    unsafe.Offsetof(cc.max_gas),

		CallResponseFuel:      unsafe.Offsetof(call.fuel),
		CreateResponseAddress: unsafe.Offsetof(create.contract_address),
	}
}
