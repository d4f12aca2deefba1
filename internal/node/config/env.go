package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables, loading a
// local .env file first if one exists. Unset variables leave the current
// value untouched.
func parseEnv(config *Config) {
	_ = godotenv.Load(".env")

	setString := func(key string, target *string) {
		if v, ok := os.LookupEnv(key); ok {
			*target = v
		}
	}

	setString("LOCSHARE_ADDR", &config.EndpointAddr)
	setString("LOCSHARE_DATABASE_DSN", &config.DatabaseDSN)
	setString("LOCSHARE_SECRET_KEY", &config.SecretKey)
	setString("LOCSHARE_RELAYER_KEY", &config.RelayerKey)
	setString("LOCSHARE_CONTRACT_ADDRESS", &config.ContractAddress)
	setString("LOCSHARE_S3_ROOT_USER", &config.S3RootUser)
	setString("LOCSHARE_S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("LOCSHARE_S3_BUCKET", &config.S3Bucket)
	setString("LOCSHARE_S3_REGION", &config.S3Region)
	setString("LOCSHARE_S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	if v, ok := os.LookupEnv("LOCSHARE_SESSION_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("LOCSHARE_BACKUP_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.BackupInterval = d
		}
	}
	if v, ok := os.LookupEnv("LOCSHARE_WRITE_RPS"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.WriteRPS = f
		}
	}
	if v, ok := os.LookupEnv("LOCSHARE_WRITE_BURST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.WriteBurst = n
		}
	}
}
