// Package config handles configuration for the ledger node, including
// defaults, .env/environment overlay, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the LocShare ledger node.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty DSN selects the in-memory store.
//   - SecretKey: HMAC secret for signing session JWTs (HS256).
//   - RelayerKey: shared key the encryption capability binds proofs with.
//   - ContractAddress: the address record encryption is bound to.
//   - SessionValidityDuration: wallet session token lifetime.
//   - WriteRPS / WriteBurst: per-account write rate limit.
//   - S3* / BackupInterval: snapshot export settings; backup is disabled when
//     S3BaseEndpoint or S3Bucket is empty.
type Config struct {
	EndpointAddr            string
	DatabaseDSN             string
	SecretKey               string
	RelayerKey              string
	ContractAddress         string
	SessionValidityDuration time.Duration
	WriteRPS                float64
	WriteBurst              int
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
	BackupInterval          time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8545"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.RelayerKey = "relayerKey"
	c.ContractAddress = "0x4A679253410272dd5232B3Ff7cF5dbB88f295319"
	c.SessionValidityDuration = 30 * time.Minute
	c.WriteRPS = 5
	c.WriteBurst = 10
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.BackupInterval = time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including a .env file if present), an optional JSON
// file, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
