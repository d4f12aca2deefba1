package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/locshare/internal/flagx"
	"github.com/dmitrijs2005/locshare/internal/timex"
)

// JsonConfig is an intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "30m" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr            string         `json:"endpoint_addr"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	RelayerKey              string         `json:"relayer_key"`
	ContractAddress         string         `json:"contract_address"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	WriteRPS                float64        `json:"write_rps"`
	WriteBurst              int            `json:"write_burst"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
	BackupInterval          timex.Duration `json:"backup_interval"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If no file is named, nothing
// happens; an unreadable or invalid file panics, matching flag handling.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		config.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		config.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		config.SecretKey = jc.SecretKey
	}
	if jc.RelayerKey != "" {
		config.RelayerKey = jc.RelayerKey
	}
	if jc.ContractAddress != "" {
		config.ContractAddress = jc.ContractAddress
	}
	if jc.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = jc.SessionValidityDuration.Duration
	}
	if jc.WriteRPS != 0 {
		config.WriteRPS = jc.WriteRPS
	}
	if jc.WriteBurst != 0 {
		config.WriteBurst = jc.WriteBurst
	}
	if jc.S3RootUser != "" {
		config.S3RootUser = jc.S3RootUser
	}
	if jc.S3RootPassword != "" {
		config.S3RootPassword = jc.S3RootPassword
	}
	if jc.S3Bucket != "" {
		config.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		config.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = jc.S3BaseEndpoint
	}
	if jc.BackupInterval.Duration != 0 {
		config.BackupInterval = jc.BackupInterval.Duration
	}
}
