package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/idkeeper/internal/flagx"
	"github.com/dmitrijs2005/idkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// values are copied into the runtime Config.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	CallTimeout        timex.Duration `json:"call_timeout"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Keys missing from the file keep their current values. Read and
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig{
		ServerEndpointAddr: cfg.ServerEndpointAddr,
		CallTimeout:        timex.Duration{Duration: cfg.CallTimeout},
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	cfg.CallTimeout = jc.CallTimeout.Duration
}
