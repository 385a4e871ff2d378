// Package simulator runs contract calls against a state that is only ever
// reached through the C state accessor, the same way a non-Go host of the
// shared library reaches it.
package simulator

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/contractsim/simulator/internal/api"
	"github.com/contractsim/simulator/internal/config"
	"github.com/contractsim/simulator/internal/contract"
	"github.com/contractsim/simulator/internal/metrics"
	"github.com/contractsim/simulator/internal/state"
	"github.com/contractsim/simulator/internal/store"
	"github.com/contractsim/simulator/types"
)

// Config is the simulator configuration.
type Config = config.Config

// Engine executes contract calls on behalf of the simulator.
type Engine = contract.Engine

// EngineFunc adapts a function to Engine.
type EngineFunc = contract.EngineFunc

// CallInfo is what an Engine gets to know about one call.
type CallInfo = contract.CallInfo

// DefaultConfig returns an in-memory configuration.
func DefaultConfig() Config { return config.Default() }

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) { return config.Load(path) }

// Simulator is the main entry point to this library. Each instance owns a store
// and a state handle registered with the accessor.
type Simulator struct {
	kv     store.KV
	handle *api.Mutable
	st     *state.SimulatorState
	logger zerolog.Logger
}

// New opens the store described by cfg and registers a state handle for it.
// Logs go to stderr.
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	return NewWithLogger(cfg, logger)
}

// NewWithLogger is New with an explicit logger. The logger is also installed
// for the accessor callbacks, which are shared by all simulators in the process.
// Enabling metrics installs the process wide Prometheus service. It cannot be
// turned off again, and simulators opened earlier report to it from then on.
func NewWithLogger(cfg Config, logger zerolog.Logger) (*Simulator, error) {
	if cfg.Metrics.Enabled {
		metrics.InitializePrometheusMetrics()
	}
	api.SetLogger(logger)

	kv, err := store.Open(cfg.Backend, "simulator", cfg.DataDir)
	if err != nil {
		return nil, err
	}
	handle := api.NewMutable(store.NewMutable(kv))
	logger.Debug().Str("backend", string(cfg.Backend)).Str("data_dir", cfg.DataDir).Msg("simulator opened")

	return &Simulator{
		kv:     kv,
		handle: handle,
		st:     state.New(handle),
		logger: logger,
	}, nil
}

// Close releases the state handle and closes the store.
func (s *Simulator) Close() error {
	s.handle.Release()
	return s.kv.Close()
}

// SetEngine registers the engine that executes contract calls, for every
// simulator in the process.
func SetEngine(e Engine) {
	api.SetEngine(e)
}

// Get returns the raw value under key, or nil if there is none.
func (s *Simulator) Get(ctx context.Context, key []byte) ([]byte, error) {
	return s.handle.GetValue(ctx, key)
}

// Insert stores a raw key-value pair. Both must be non-empty.
func (s *Simulator) Insert(ctx context.Context, key, value []byte) error {
	return s.handle.Insert(ctx, key, value)
}

// Remove deletes a raw key.
func (s *Simulator) Remove(ctx context.Context, key []byte) error {
	return s.handle.Remove(ctx, key)
}

// CreateContract loads the wasm module at path and binds it to a new account.
func (s *Simulator) CreateContract(path string) (types.CreateContractResponse, error) {
	return s.handle.HostCreateContract(path)
}

// CallContract dispatches a call to the registered Engine.
func (s *Simulator) CallContract(cc types.CallContext) (types.CallContractResponse, error) {
	return s.handle.HostCallContract(cc)
}

// ContractState returns the storage of the contract at addr.
func (s *Simulator) ContractState(addr types.Address) types.Mutable {
	return s.st.GetContractState(addr)
}

// ContractCode returns the code bound to the account addr.
func (s *Simulator) ContractCode(ctx context.Context, addr types.Address) (types.ContractID, []byte, error) {
	id, err := s.st.GetAccountContract(ctx, addr)
	if err != nil {
		return nil, nil, err
	}
	code, err := s.st.GetContractBytes(ctx, id)
	return id, code, err
}

// Balance returns the balance of addr.
func (s *Simulator) Balance(ctx context.Context, addr types.Address) (uint64, error) {
	return s.st.GetBalance(ctx, addr)
}

// SetBalance overwrites the balance of addr.
func (s *Simulator) SetBalance(ctx context.Context, addr types.Address, amount uint64) error {
	return s.st.SetBalance(ctx, addr, amount)
}

// Transfer moves amount between accounts. Transfers from types.EmptyAddress mint.
func (s *Simulator) Transfer(ctx context.Context, from, to types.Address, amount uint64) error {
	return s.st.TransferBalance(ctx, from, to, amount)
}

// Snapshot serializes the whole store.
func (s *Simulator) Snapshot() ([]byte, error) {
	return store.Export(s.kv)
}

// Restore loads a snapshot into the store and returns the number of entries written.
func (s *Simulator) Restore(data []byte) (int, error) {
	n, err := store.Import(s.kv, data)
	if err != nil {
		return n, err
	}
	s.logger.Info().Int("entries", n).Msg("snapshot restored")
	return n, nil
}
