package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, "accounts.db", c.DatabaseDSN)
	assert.Empty(t, c.SecretKey, "secret must never have a default")
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Equal(t, 10, c.Workers)
	assert.Equal(t, bcrypt.DefaultCost, c.BcryptCost)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"database_dsn": "from-json.db",
		"secret_key":   "json-secret",
		"workers":      3,
	})
	os.Args = []string{"testbin", "-c", path, "-s", "flag-secret", "-w", "5"}
	t.Setenv("IDKEEPER_WORKERS", "7")

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, ":50051", c.EndpointAddrGRPC, "default survives")
	assert.Equal(t, "from-json.db", c.DatabaseDSN, "json over default")
	assert.Equal(t, "flag-secret", c.SecretKey, "flag over json")
	assert.Equal(t, 7, c.Workers, "env over flag")
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		c.SecretKey = "s"
		return c
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing secret", func(c *Config) { c.SecretKey = "" }, "secret key is required"},
		{"missing dsn", func(c *Config) { c.DatabaseDSN = "" }, "database DSN is required"},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }, "token TTL must be positive"},
		{"no workers", func(c *Config) { c.Workers = 0 }, "workers must be positive"},
		{"cost too low", func(c *Config) { c.BcryptCost = 1 }, "bcrypt cost"},
		{"cost too high", func(c *Config) { c.BcryptCost = 99 }, "bcrypt cost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
