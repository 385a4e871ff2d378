package api

/*
#include "bindings.h"
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/contractsim/simulator/internal/state"
	"github.com/contractsim/simulator/internal/store"
	"github.com/contractsim/simulator/types"
)

var errInvalidParameter = errors.New("invalid parameter")

/****** Exports ******/

// NewSimulatorState returns a handle to a fresh in-memory state served by Go.
// Release it with ReleaseSimulatorState.
//
//export NewSimulatorState
func NewSimulatorState() C.Mutable {
	m := NewMutable(store.NewMutable(store.NewMemDB()))
	log().Debug().Uint64("handle", m.handle).Msg("created simulator state")
	return m.cm
}

// ReleaseSimulatorState frees a handle returned by NewSimulatorState. Copies of
// the struct held elsewhere must not be used afterwards.
//
//export ReleaseSimulatorState
func ReleaseSimulatorState(statePtr *C.Mutable) {
	if statePtr == nil {
		return
	}
	releaseStateObj(statePtr.stateObj)
	statePtr.stateObj = nil
}

// SimulatorVersion returns the library version. The caller frees the string.
//
//export SimulatorVersion
func SimulatorVersion() *C.char {
	return C.CString(Version())
}

//export CreateContract
func CreateContract(statePtr *C.Mutable, path *C.char) C.CreateContractResponse {
	if statePtr == nil || path == nil {
		return newCreateContractResponse(types.CreateContractResponse{}, errInvalidParameter)
	}
	resp, err := createContract(simContext, wrapMutable(statePtr), C.GoString(path))
	return newCreateContractResponse(resp, err)
}

//export CallContract
func CallContract(statePtr *C.Mutable, callCtx *C.SimulatorCallContext) C.CallContractResponse {
	if statePtr == nil || callCtx == nil {
		return newCallContractResponse(types.CallContractResponse{}, errInvalidParameter)
	}
	resp, err := callContract(simContext, wrapMutable(statePtr), readCallContext(callCtx))
	return newCallContractResponse(resp, err)
}

// GetBalance returns the balance of address, or 0 when it cannot be read.
//
//export GetBalance
func GetBalance(statePtr *C.Mutable, address C.Address) C.uint64_t {
	if statePtr == nil {
		return 0
	}
	addr := readAddress(&address)
	balance, err := state.New(wrapMutable(statePtr)).GetBalance(simContext, addr)
	if err != nil {
		log().Warn().Err(err).Str("address", addr.String()).Msg("get balance failed")
		return 0
	}
	return C.uint64_t(balance)
}

// SetBalance overwrites the balance of address. Failures are logged.
//
//export SetBalance
func SetBalance(statePtr *C.Mutable, address C.Address, balance C.uint64_t) {
	if statePtr == nil {
		return
	}
	addr := readAddress(&address)
	if err := state.New(wrapMutable(statePtr)).SetBalance(simContext, addr, uint64(balance)); err != nil {
		log().Warn().Err(err).Str("address", addr.String()).Msg("set balance failed")
	}
}

/****** Responses ******/

func readCallContext(c *C.SimulatorCallContext) types.CallContext {
	cc := types.CallContext{
		Contract:  readAddress(&c.contract_address),
		Actor:     readAddress(&c.actor_address),
		Height:    uint64(c.height),
		Timestamp: uint64(c.timestamp),
		Params:    readBytes(c.params),
		MaxGas:    uint64(c.max_gas),
	}
	if c.method != nil {
		cc.Method = C.GoString(c.method)
	}
	return cc
}

func newCreateContractResponse(resp types.CreateContractResponse, err error) C.CreateContractResponse {
	if err != nil {
		log().Debug().Err(err).Msg("create contract failed")
		return C.CreateContractResponse{error: newCError(err)}
	}
	return C.CreateContractResponse{
		contract_id:      newCBytes(resp.ContractID),
		contract_address: cAddress(resp.Address),
	}
}

// takeCreateContractResponse copies a response into Go memory and frees it.
func takeCreateContractResponse(r C.CreateContractResponse) (types.CreateContractResponse, error) {
	if r.error != nil {
		freeBytes(r.contract_id)
		msg := C.GoString(r.error)
		C.free(unsafe.Pointer(r.error))
		return types.CreateContractResponse{}, errors.New(msg)
	}
	return types.CreateContractResponse{
		ContractID: copyAndFreeBytes(r.contract_id),
		Address:    readAddress(&r.contract_address),
	}, nil
}

func newCallContractResponse(resp types.CallContractResponse, err error) C.CallContractResponse {
	if err != nil {
		log().Debug().Err(err).Msg("call contract failed")
		return C.CallContractResponse{error: newCError(err)}
	}
	return C.CallContractResponse{
		result: newCBytes(resp.Result),
		fuel:   C.uint64_t(resp.Fuel),
	}
}

// takeCallContractResponse copies a response into Go memory and frees it.
func takeCallContractResponse(r C.CallContractResponse) (types.CallContractResponse, error) {
	if r.error != nil {
		freeBytes(r.result)
		msg := C.GoString(r.error)
		C.free(unsafe.Pointer(r.error))
		return types.CallContractResponse{}, errors.New(msg)
	}
	return types.CallContractResponse{
		Result: copyAndFreeBytes(r.result),
		Fuel:   uint64(r.fuel),
	}, nil
}

/****** Host side ******/

// HostCreateContract goes through the exported CreateContract exactly as a C host would.
// The host methods carry a prefix because cgo resolves //export by name.
func (m *Mutable) HostCreateContract(path string) (types.CreateContractResponse, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return takeCreateContractResponse(CreateContract(m.cptr(), cpath))
}

// HostCallContract goes through the exported CallContract exactly as a C host would.
// Method and params are copied into C memory for the duration of the call.
func (m *Mutable) HostCallContract(cc types.CallContext) (types.CallContractResponse, error) {
	cctx := C.SimulatorCallContext{
		contract_address: cAddress(cc.Contract),
		actor_address:    cAddress(cc.Actor),
		height:           C.uint64_t(cc.Height),
		timestamp:        C.uint64_t(cc.Timestamp),
		method:           C.CString(cc.Method),
		params:           newCBytes(cc.Params),
		max_gas:          C.uint64_t(cc.MaxGas),
	}
	defer C.free(unsafe.Pointer(cctx.method))
	defer freeBytes(cctx.params)
	return takeCallContractResponse(CallContract(m.cptr(), &cctx))
}

// HostBalance reads a balance through the exported GetBalance.
func (m *Mutable) HostBalance(addr types.Address) uint64 {
	return uint64(GetBalance(m.cptr(), cAddress(addr)))
}

// HostSetBalance writes a balance through the exported SetBalance.
func (m *Mutable) HostSetBalance(addr types.Address, amount uint64) {
	SetBalance(m.cptr(), cAddress(addr), C.uint64_t(amount))
}
