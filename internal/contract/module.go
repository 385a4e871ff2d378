package contract

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/tetratelabs/wazero"
)

// ErrInvalidModule wraps every failure to compile contract code.
var ErrInvalidModule = errors.New("invalid wasm module")

// Module describes a compiled contract.
type Module struct {
	Name    string
	Exports []string
}

// HasExport reports whether the module exports a function called name.
func (m *Module) HasExport(name string) bool {
	i := sort.SearchStrings(m.Exports, name)
	return i < len(m.Exports) && m.Exports[i] == name
}

// Inspector compiles contract code to check it and list its exports.
// Nothing is instantiated. It is safe for concurrent use.
type Inspector struct {
	mtx     sync.Mutex
	runtime wazero.Runtime
}

// NewInspector creates an Inspector backed by the wazero interpreter.
func NewInspector(ctx context.Context) *Inspector {
	return &Inspector{
		runtime: wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter()),
	}
}

// Inspect compiles code and returns its exported functions in sorted order.
func (i *Inspector) Inspect(ctx context.Context, code []byte) (*Module, error) {
	if len(code) == 0 {
		return nil, errors.Wrap(ErrInvalidModule, "empty code")
	}
	i.mtx.Lock()
	defer i.mtx.Unlock()

	compiled, err := i.runtime.CompileModule(ctx, code)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidModule, "%v", err)
	}
	defer compiled.Close(ctx)

	m := &Module{Name: compiled.Name()}
	for name := range compiled.ExportedFunctions() {
		m.Exports = append(m.Exports, name)
	}
	sort.Strings(m.Exports)
	return m, nil
}

// Close releases the underlying runtime.
func (i *Inspector) Close(ctx context.Context) error {
	return i.runtime.Close(ctx)
}

// Validate reports whether code is a well formed wasm module.
func Validate(ctx context.Context, code []byte) error {
	i := NewInspector(ctx)
	defer i.Close(ctx)
	_, err := i.Inspect(ctx, code)
	return err
}
