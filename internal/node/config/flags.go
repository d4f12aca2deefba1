package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/locshare/internal/flagx"
)

// parseFlags populates selected node Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   API bind address (e.g., ":8545")
//	-d string   PostgreSQL DSN (empty selects the in-memory store)
//	-s string   session JWT HMAC secret key
//	-k string   relayer key for proof binding
//	-x string   contract address
//	-t int      session token validity, minutes
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-i int      backup interval, minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-k", "-x", "-t", "-u", "-p", "-b", "-g", "-e", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run the node API")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session secret key")
	fs.StringVar(&config.RelayerKey, "k", config.RelayerKey, "relayer key")
	fs.StringVar(&config.ContractAddress, "x", config.ContractAddress, "contract address")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session_validity_duration (in minutes)")
	backupInterval := fs.Int("i", int(config.BackupInterval.Minutes()), "backup_interval (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.BackupInterval = time.Duration(*backupInterval) * time.Minute
}
