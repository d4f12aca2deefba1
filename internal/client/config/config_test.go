package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8545", c.NodeEndpointAddr)
	assert.Equal(t, 30*time.Second, c.ConfirmTimeout)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8545", cfg.NodeEndpointAddr)
	assert.Equal(t, 30*time.Second, cfg.ConfirmTimeout)
}

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "http://127.0.0.1:9545", "-w", "10"}, expectPanic: false,
			expected: &Config{NodeEndpointAddr: "http://127.0.0.1:9545", ConfirmTimeout: 10 * time.Second}},
		{name: "Test2 incorrect timeout", args: []string{"cmd", "-a", "http://127.0.0.1:9545", "-w", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.json")
	data := []byte(`{"node_endpoint_addr": "http://node:8545", "relayer_key": "rk", "confirm_timeout": "45s", "request_timeout": "5s"}`)
	require.NoError(t, os.WriteFile(file, data, 0o600))

	os.Args = []string{"cmd", "-c", file}
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

	config := &Config{}
	require.NotPanics(t, func() { parseJson(config) })

	assert.Equal(t, "http://node:8545", config.NodeEndpointAddr)
	assert.Equal(t, "rk", config.RelayerKey)
	assert.Equal(t, 45*time.Second, config.ConfirmTimeout)
	assert.Equal(t, 5*time.Second, config.RequestTimeout)
}
