package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config with pointer fields so that only variables that
// are actually set in the environment override earlier sources.
type envConfig struct {
	APIBaseURL     *string        `env:"MINICLUB_API_URL"`
	RequestTimeout *time.Duration `env:"MINICLUB_TIMEOUT"`
	DatabasePath   *string        `env:"MINICLUB_DB_PATH"`
	DevMode        *bool          `env:"MINICLUB_DEV"`
}

// parseEnv overlays Config with values from MINICLUB_* environment
// variables. Parse errors panic, matching parseJson.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != nil {
		cfg.APIBaseURL = *ec.APIBaseURL
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.DatabasePath != nil {
		cfg.DatabasePath = *ec.DatabasePath
	}
	if ec.DevMode != nil {
		cfg.DevMode = *ec.DevMode
	}
}
