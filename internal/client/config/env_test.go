package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Run("overrides only set variables", func(t *testing.T) {
		t.Setenv("MINICLUB_API_URL", "http://env.example/api")
		t.Setenv("MINICLUB_TIMEOUT", "30s")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://env.example/api", cfg.APIBaseURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "miniclub.db", cfg.DatabasePath)
		assert.False(t, cfg.DevMode)
	})

	t.Run("dev mode", func(t *testing.T) {
		t.Setenv("MINICLUB_DEV", "true")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.True(t, cfg.DevMode)
	})
}
