package config

import "github.com/caarlos0/env/v11"

// EnvPrefix is prepended to every variable name in the Config env tags.
const EnvPrefix = "IDKEEPER_"

// parseEnv overlays Config with IDKEEPER_* variables. Unset variables leave
// the field as is. Malformed values panic, like malformed JSON or flags.
func parseEnv(config *Config) {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
