package config

import "time"

// Config holds runtime settings for the LocShare CLI.
//
// Fields:
//   - NodeEndpointAddr: base URL of the ledger node HTTP API.
//   - RelayerKey: shared key of the decryption relayer, must match the node's.
//   - ConfirmTimeout: how long a write waits for transaction confirmation.
//   - RequestTimeout: per-request HTTP timeout.
//
// Units: timeouts are time.Durations (e.g., 30*time.Second).
type Config struct {
	NodeEndpointAddr string
	RelayerKey       string
	ConfirmTimeout   time.Duration
	RequestTimeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.NodeEndpointAddr = "http://127.0.0.1:8545"
	c.RelayerKey = "relayerKey"
	c.ConfirmTimeout = 30 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
