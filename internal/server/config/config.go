// Package config handles configuration for the server component: defaults,
// JSON overlay, command-line flags and environment variables, applied in
// that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the idkeeper server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: postgres:// URL (pgx) or SQLite file path.
//   - SecretKey: HMAC secret for signing tokens (HS256). No default.
//   - TokenTTL: lifetime of issued bearer tokens.
//   - Workers: number of calls served concurrently.
//   - BcryptCost: work factor for new password hashes.
//   - ShutdownTimeout: how long graceful stop may take before a hard stop.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrGRPC string        `env:"GRPC_ADDR"`
	DatabaseDSN      string        `env:"DATABASE_DSN"`
	SecretKey        string        `env:"SECRET_KEY"`
	TokenTTL         time.Duration `env:"TOKEN_TTL"`
	Workers          int           `env:"WORKERS"`
	BcryptCost       int           `env:"BCRYPT_COST"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT"`
	LogLevel         string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults. SecretKey is
// deliberately left empty.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "accounts.db"
	c.TokenTTL = 24 * time.Hour
	c.Workers = 10
	c.BcryptCost = bcrypt.DefaultCost
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, command-line flags and finally IDKEEPER_*
// environment variables.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required (-s, secret_key or IDKEEPER_SECRET_KEY)"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token TTL must be positive, got %s", c.TokenTTL))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost must be in [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost))
	}
	return errors.Join(errs...)
}
