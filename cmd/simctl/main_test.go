//go:build cgo

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const runContract = "../../testdata/run.wasm"

// run executes simctl against the goleveldb store in dir and returns its output.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out

	argv := append([]string{"simctl", "--data-dir", dir, "--verbosity", "disabled"}, args...)
	err := app.Run(argv)
	return out.String(), err
}

func TestRawCommands(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "put", "foo", "0x0102")
	require.NoError(t, err)

	out, err := run(t, dir, "get", "foo")
	require.NoError(t, err)
	require.Equal(t, "0x0102\n", out)

	_, err = run(t, dir, "delete", "foo")
	require.NoError(t, err)

	_, err = run(t, dir, "get", "foo")
	require.ErrorContains(t, err, "not found")

	_, err = run(t, dir, "get")
	require.ErrorContains(t, err, "expects 1 argument")

	_, err = run(t, dir, "put", "0xzz", "v")
	require.ErrorContains(t, err, "decode")
}

func TestContractAndBalanceCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "create-contract", runContract)
	require.NoError(t, err)
	require.Contains(t, out, "contract id: ")
	require.Contains(t, out, "address: ")

	addr := strings.Repeat("02", 33)
	_, err = run(t, dir, "set-balance", addr, "1234")
	require.NoError(t, err)

	out, err = run(t, dir, "balance", addr)
	require.NoError(t, err)
	require.Equal(t, "1234\n", out)

	_, err = run(t, dir, "balance", "beef")
	require.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "inspect", runContract)
	require.NoError(t, err)
	require.Equal(t, "run\n", out)
}

func TestDumpAndLoad(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	snapshot := filepath.Join(t.TempDir(), "state.msgpack")

	_, err := run(t, src, "put", "a", "1")
	require.NoError(t, err)
	_, err = run(t, src, "put", "b", "2")
	require.NoError(t, err)
	_, err = run(t, src, "dump", snapshot)
	require.NoError(t, err)

	out, err := run(t, dst, "load", snapshot)
	require.NoError(t, err)
	require.Equal(t, "restored 2 entries\n", out)

	out, err = run(t, dst, "get", "b")
	require.NoError(t, err)
	require.Equal(t, "0x32\n", out)
}

func TestConfigFile(t *testing.T) {
	dataDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "simulator.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"backend: goleveldb\ndata_dir: "+dataDir+"\nlog:\n  level: disabled\n",
	), 0o600))

	var out bytes.Buffer
	runWithConfig := func(args ...string) error {
		app := newApp()
		app.Writer = &out
		return app.Run(append([]string{"simctl", "--config", cfgPath}, args...))
	}
	require.NoError(t, runWithConfig("put", "k", "v"))
	require.NoError(t, runWithConfig("get", "k"))
	require.Equal(t, "0x76\n", out.String())

	// an explicit flag wins over the file
	err := runWithConfig("--backend", "rocks", "get", "k")
	require.ErrorContains(t, err, "unknown backend")
}
