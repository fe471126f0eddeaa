package config

import "github.com/caarlos0/env/v11"

// EnvPrefix namespaces every environment variable the client reads.
const EnvPrefix = "HIREPAD_"

// parseEnv overlays cfg with HIREPAD_* variables. Unset variables leave
// the current value alone. Panics on malformed values.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
