package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend server (default from Config)
//	-t int      per-call timeout in seconds (default from Config)
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	callTimeout := fs.Int("t", int(cfg.CallTimeout.Seconds()), "call timeout (in seconds)")

	if err := flagx.Parse(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	cfg.CallTimeout = time.Duration(*callTimeout) * time.Second
}
