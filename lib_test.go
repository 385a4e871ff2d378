//go:build cgo

package simulator

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/contractsim/simulator/internal/store"
	"github.com/contractsim/simulator/types"
)

const RUN_TEST_CONTRACT = "./testdata/run.wasm"

func withSimulator(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	sim, err := NewWithLogger(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, sim.Close()) })
	return sim
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "rocks"
	_, err := New(cfg)
	require.ErrorContains(t, err, "unknown backend")
}

func TestRawState(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []store.Backend{store.BackendMemory, store.BackendMemDB} {
		backend := backend
		t.Run(string(backend), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Backend = backend
			sim := withSimulator(t, cfg)

			require.NoError(t, sim.Insert(ctx, []byte("foo"), []byte("bar")))
			got, err := sim.Get(ctx, []byte("foo"))
			require.NoError(t, err)
			require.Equal(t, []byte("bar"), got)

			require.NoError(t, sim.Remove(ctx, []byte("foo")))
			got, err = sim.Get(ctx, []byte("foo"))
			require.NoError(t, err)
			require.Nil(t, got)

			require.Error(t, sim.Insert(ctx, []byte("foo"), nil))
		})
	}
}

func TestContractLifecycle(t *testing.T) {
	ctx := context.Background()
	sim := withSimulator(t, DefaultConfig())

	created, err := sim.CreateContract(RUN_TEST_CONTRACT)
	require.NoError(t, err)

	id, code, err := sim.ContractCode(ctx, created.Address)
	require.NoError(t, err)
	require.Equal(t, created.ContractID, id)
	require.NotEmpty(t, code)

	SetEngine(EngineFunc(func(ctx context.Context, info *CallInfo) ([]byte, error) {
		if err := info.ConsumeFuel(uint64(len(info.Params))); err != nil {
			return nil, err
		}
		count, err := info.State.GetValue(ctx, []byte("count"))
		if err != nil {
			return nil, err
		}
		next := []byte{1}
		if count != nil {
			next = []byte{count[0] + 1}
		}
		return next, info.State.Insert(ctx, []byte("count"), next)
	}))
	t.Cleanup(func() { SetEngine(nil) })

	call := types.CallContext{
		Contract: created.Address,
		Method:   "run",
		Params:   []byte("abc"),
		MaxGas:   1000,
	}
	for i := byte(1); i <= 3; i++ {
		resp, err := sim.CallContract(call)
		require.NoError(t, err)
		require.Equal(t, []byte{i}, resp.Result)
		require.Equal(t, uint64(3), resp.Fuel)
	}

	got, err := sim.ContractState(created.Address).GetValue(ctx, []byte("count"))
	require.NoError(t, err)
	require.Equal(t, []byte{3}, got)

	call.MaxGas = 2
	_, err = sim.CallContract(call)
	require.EqualError(t, err, "out of fuel")
}

func TestBalances(t *testing.T) {
	ctx := context.Background()
	sim := withSimulator(t, DefaultConfig())
	alice := types.Address{0x02, 0x01}
	bob := types.Address{0x02, 0x02}

	require.NoError(t, sim.Transfer(ctx, types.EmptyAddress, alice, 100))
	require.NoError(t, sim.Transfer(ctx, alice, bob, 30))
	require.Error(t, sim.Transfer(ctx, bob, alice, 31))

	balance, err := sim.Balance(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, uint64(70), balance)

	require.NoError(t, sim.SetBalance(ctx, bob, 5))
	balance, err = sim.Balance(ctx, bob)
	require.NoError(t, err)
	require.Equal(t, uint64(5), balance)
}

func TestSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	src := withSimulator(t, DefaultConfig())
	created, err := src.CreateContract(RUN_TEST_CONTRACT)
	require.NoError(t, err)
	require.NoError(t, src.SetBalance(ctx, created.Address, 9))

	snap, err := src.Snapshot()
	require.NoError(t, err)

	dst := withSimulator(t, DefaultConfig())
	n, err := dst.Restore(snap)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	id, _, err := dst.ContractCode(ctx, created.Address)
	require.NoError(t, err)
	require.Equal(t, created.ContractID, id)
	balance, err := dst.Balance(ctx, created.Address)
	require.NoError(t, err)
	require.Equal(t, uint64(9), balance)
}

func TestPersistentBackend(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Backend = store.BackendGoLevelDB
	cfg.DataDir = t.TempDir()

	sim, err := NewWithLogger(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, sim.Insert(ctx, []byte("k"), []byte("v")))
	require.NoError(t, sim.Close())

	reopened := withSimulator(t, cfg)
	got, err := reopened.Get(ctx, []byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}
