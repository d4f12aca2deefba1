package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8545", cfg.EndpointAddr)
	require.Empty(t, cfg.DatabaseDSN)
	require.Equal(t, 30*time.Minute, cfg.SessionValidityDuration)
	require.Equal(t, float64(5), cfg.WriteRPS)
	require.NotEmpty(t, cfg.ContractAddress)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("LOCSHARE_ADDR", ":9999")
	t.Setenv("LOCSHARE_SESSION_VALIDITY", "90s")
	t.Setenv("LOCSHARE_WRITE_BURST", "42")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, ":9999", cfg.EndpointAddr)
	require.Equal(t, 90*time.Second, cfg.SessionValidityDuration)
	require.Equal(t, 42, cfg.WriteBurst)
	// Untouched values keep their defaults.
	require.Equal(t, "secretKey", cfg.SecretKey)
}

func TestParseEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("LOCSHARE_WRITE_RPS", "not-a-number")
	t.Setenv("LOCSHARE_BACKUP_INTERVAL", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, float64(5), cfg.WriteRPS)
	require.Equal(t, time.Hour, cfg.BackupInterval)
}

func TestJsonConfig_Unmarshal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr": ":7777",
		"relayer_key": "rk",
		"session_validity_duration": "15m",
		"write_rps": 2.5
	}`), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	cfg := &Config{}
	cfg.LoadDefaults()

	var jc JsonConfig
	require.NoError(t, json.Unmarshal(data, &jc))
	require.Equal(t, ":7777", jc.EndpointAddr)
	require.Equal(t, "rk", jc.RelayerKey)
	require.Equal(t, 15*time.Minute, jc.SessionValidityDuration.Duration)
	require.Equal(t, 2.5, jc.WriteRPS)
}
