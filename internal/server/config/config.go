// Package config handles configuration for the server component,
// including defaults, environment variables, JSON overlay, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the Roster server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: storage DSN; the scheme selects the backend
//     ("postgres://..." for PostgreSQL, "file:..." for SQLite).
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
type Config struct {
	EndpointAddr                 string        `env:"ROSTER_ADDRESS"`
	DatabaseDSN                  string        `env:"ROSTER_DATABASE_DSN"`
	SecretKey                    string        `env:"ROSTER_SECRET_KEY"`
	AccessTokenValidityDuration  time.Duration `env:"ROSTER_ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `env:"ROSTER_REFRESH_TOKEN_TTL"`
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = "file:roster.db?cache=shared"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from environment variables, an optional JSON file, and finally from
// command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
