package contract

import (
	"context"

	"github.com/pkg/errors"

	"github.com/contractsim/simulator/types"
)

var (
	// ErrNoEngine is returned by calls made before an Engine was registered.
	ErrNoEngine = errors.New("no contract engine registered")
	// ErrOutOfFuel is returned when a call tries to consume more fuel than it was given.
	ErrOutOfFuel = errors.New("out of fuel")
)

// Engine executes contract calls. The simulator only routes calls to it;
// how code is run and what it costs is up to the implementation.
type Engine interface {
	Call(ctx context.Context, info *CallInfo) ([]byte, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, info *CallInfo) ([]byte, error)

// Call implements Engine.
func (f EngineFunc) Call(ctx context.Context, info *CallInfo) ([]byte, error) {
	return f(ctx, info)
}

// CallInfo is everything an Engine gets to know about one call.
type CallInfo struct {
	// State is scoped to the called contract.
	State types.Mutable

	Actor        types.Address
	Contract     types.Address
	ContractID   types.ContractID
	Code         []byte
	FunctionName string
	Params       []byte
	Height       uint64
	Timestamp    uint64

	// Fuel is the maximum the call may consume.
	Fuel     uint64
	consumed uint64
}

// ConsumeFuel charges amount against the call. When the remaining fuel does not
// cover it, all fuel is consumed and ErrOutOfFuel is returned.
func (c *CallInfo) ConsumeFuel(amount uint64) error {
	if amount > c.RemainingFuel() {
		c.consumed = c.Fuel
		return ErrOutOfFuel
	}
	c.consumed += amount
	return nil
}

// RemainingFuel is the fuel still available to the call.
func (c *CallInfo) RemainingFuel() uint64 {
	return c.Fuel - c.consumed
}

// FuelConsumed is the fuel used so far.
func (c *CallInfo) FuelConsumed() uint64 {
	return c.consumed
}
