package types

import "context"

// Mutable is read/write access to one simulated state snapshot.
//
// A missing key reads as a nil value and no error. Whether a Mutable may be used
// from several goroutines at once is up to the implementation.
type Mutable interface {
	GetValue(ctx context.Context, key []byte) ([]byte, error)
	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// CallContext describes a single contract invocation.
type CallContext struct {
	// address of the contract being invoked
	Contract Address
	// invoker
	Actor     Address
	Height    uint64
	Timestamp uint64
	// exported function to call
	Method string
	// serialized by the caller, opaque to the simulator
	Params []byte
	// max fuel the call may consume
	MaxGas uint64
}

// CallContractResponse is the successful outcome of a contract call.
type CallContractResponse struct {
	Result []byte
	// Fuel is the amount of fuel consumed by the call.
	Fuel uint64
}

// CreateContractResponse is the successful outcome of storing a new contract.
type CreateContractResponse struct {
	ContractID ContractID
	Address    Address
}
