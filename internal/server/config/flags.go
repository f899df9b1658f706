package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/idkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   database DSN (postgres:// URL or SQLite file)
//	-s string   token HMAC secret key
//	-t int      token validity, minutes
//	-w int      concurrent call workers
//	-b int      bcrypt cost
//	-l string   log level
//
// Only flags defined here are picked out of os.Args (see flagx.Parse), so
// -c/-config and flags of other components do not collide.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes)")

	fs.IntVar(&config.Workers, "w", config.Workers, "number of concurrent workers")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := flagx.Parse(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
}
