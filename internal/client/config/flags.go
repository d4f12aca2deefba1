package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/locshare/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the ledger node (default from Config)
//	-x string   shared relayer key (default from Config)
//	-w int      confirmation wait timeout in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-x", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.NodeEndpointAddr, "a", cfg.NodeEndpointAddr, "base URL of the ledger node")
	fs.StringVar(&cfg.RelayerKey, "x", cfg.RelayerKey, "shared relayer key")
	confirmTimeout := fs.Int("w", int(cfg.ConfirmTimeout.Seconds()), "confirmation wait timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ConfirmTimeout = time.Duration(*confirmTimeout) * time.Second
}
