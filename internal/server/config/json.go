package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/idkeeper/internal/flagx"
	"github.com/dmitrijs2005/idkeeper/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations use timex.Duration, so
// both "24h" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	TokenTTL         timex.Duration `json:"token_ttl"`
	Workers          int            `json:"workers"`
	BcryptCost       int            `json:"bcrypt_cost"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	LogLevel         string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// field it sets into config. Unreadable files and invalid JSON panic.
func parseJson(config *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	// Seed with current values so absent keys are no-ops.
	c := &JsonConfig{
		EndpointAddrGRPC: config.EndpointAddrGRPC,
		DatabaseDSN:      config.DatabaseDSN,
		SecretKey:        config.SecretKey,
		TokenTTL:         timex.Duration{Duration: config.TokenTTL},
		Workers:          config.Workers,
		BcryptCost:       config.BcryptCost,
		ShutdownTimeout:  timex.Duration{Duration: config.ShutdownTimeout},
		LogLevel:         config.LogLevel,
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenTTL = c.TokenTTL.Duration
	config.Workers = c.Workers
	config.BcryptCost = c.BcryptCost
	config.ShutdownTimeout = c.ShutdownTimeout.Duration
	config.LogLevel = c.LogLevel
}
