package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config fields from ROSTER_* environment variables.
// Variables that are not set leave the current values untouched. Duration
// fields accept time.ParseDuration syntax ("15m", "24h").
//
// If a variable is present but cannot be parsed, the function panics, same
// as the other configuration stages.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
