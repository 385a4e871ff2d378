package contract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contractsim/simulator/types"
)

// a module exporting a single no-op function "run"
var runModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x07, 0x01, 0x03, 'r', 'u', 'n', 0x00, 0x00,
	0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b,
}

func TestInspect(t *testing.T) {
	ctx := context.Background()
	i := NewInspector(ctx)
	defer i.Close(ctx)

	m, err := i.Inspect(ctx, runModule)
	require.NoError(t, err)
	require.Equal(t, []string{"run"}, m.Exports)
	require.True(t, m.HasExport("run"))
	require.False(t, m.HasExport("walk"))

	empty, err := i.Inspect(ctx, []byte("\x00asm\x01\x00\x00\x00"))
	require.NoError(t, err)
	require.Empty(t, empty.Exports)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, Validate(ctx, runModule))

	cases := map[string][]byte{
		"empty":     nil,
		"bad magic": {0x01, 0x02, 0x03, 0x04},
		"truncated": runModule[:len(runModule)-3],
	}
	for name, code := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, Validate(ctx, code), ErrInvalidModule)
		})
	}
}

func TestNewContractID(t *testing.T) {
	a, err := NewContractID()
	require.NoError(t, err)
	require.Len(t, a, types.ContractIDLen)

	b, err := NewContractID()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestCallInfoFuel(t *testing.T) {
	info := &CallInfo{Fuel: 100}
	require.Equal(t, uint64(100), info.RemainingFuel())

	require.NoError(t, info.ConsumeFuel(40))
	require.Equal(t, uint64(60), info.RemainingFuel())
	require.Equal(t, uint64(40), info.FuelConsumed())

	require.NoError(t, info.ConsumeFuel(60))
	require.Zero(t, info.RemainingFuel())

	require.ErrorIs(t, info.ConsumeFuel(1), ErrOutOfFuel)
	require.Equal(t, uint64(100), info.FuelConsumed())

	info = &CallInfo{Fuel: 10}
	require.ErrorIs(t, info.ConsumeFuel(11), ErrOutOfFuel)
	require.Equal(t, uint64(10), info.FuelConsumed())
}

func TestEngineFunc(t *testing.T) {
	var e Engine = EngineFunc(func(_ context.Context, info *CallInfo) ([]byte, error) {
		return []byte(info.FunctionName), info.ConsumeFuel(3)
	})
	info := &CallInfo{FunctionName: "run", Fuel: 5}
	out, err := e.Call(context.Background(), info)
	require.NoError(t, err)
	require.Equal(t, []byte("run"), out)
	require.Equal(t, uint64(3), info.FuelConsumed())
}
