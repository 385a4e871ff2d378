package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contractsim/simulator/internal/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, store.BackendMemory, cfg.Backend)
	require.False(t, cfg.Metrics.Enabled)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
backend: goleveldb
data_dir: /var/lib/simulator
log:
  level: debug
  format: json
metrics:
  enabled: true
  addr: ":9100"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, store.BackendGoLevelDB, cfg.Backend)
	require.Equal(t, "/var/lib/simulator", cfg.DataDir)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, ":9100", cfg.Metrics.Addr)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "backend: memdb\n"))
	require.NoError(t, err)
	require.Equal(t, store.BackendMemDB, cfg.Backend)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]struct {
		content string
		wantErr string
	}{
		"unknown backend": {content: "backend: rocksdb\n", wantErr: "unknown backend"},
		"leveldb no dir":  {content: "backend: goleveldb\n", wantErr: "data_dir is required"},
		"bad level":       {content: "log:\n  level: loud\n", wantErr: "log.level"},
		"bad format":      {content: "log:\n  format: xml\n", wantErr: "unknown log format"},
		"metrics no addr": {content: "metrics:\n  enabled: true\n  addr: \"\"\n", wantErr: "metrics.addr"},
		"malformed yaml":  {content: "backend: [\n", wantErr: "parse config"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.ErrorContains(t, err, tc.wantErr)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := LogConfig{Level: "info", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("op", "get").Msg("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	require.Equal(t, "visible", line["message"])
	require.Equal(t, "get", line["op"])
	require.Equal(t, "info", line["level"])

	buf.Reset()
	console, err := LogConfig{Level: "warn", Format: "console"}.NewLogger(&buf)
	require.NoError(t, err)
	console.Warn().Msg("careful")
	require.Contains(t, buf.String(), "careful")

	_, err = LogConfig{Level: "loud"}.NewLogger(&buf)
	require.Error(t, err)
}
