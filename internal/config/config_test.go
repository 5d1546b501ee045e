package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, "configs/content", cfg.ContentDir)
	assert.Equal(t, 5*time.Second, cfg.ReloadInterval)
	assert.Equal(t, int64(1000), cfg.StartingGold)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("GRPC_PORT", "0")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RELOAD_INTERVAL", "0s")
	t.Setenv("STARTING_GOLD", "25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.HTTPPort)
	assert.Zero(t, cfg.GRPCPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Zero(t, cfg.ReloadInterval)
	assert.Equal(t, int64(25), cfg.StartingGold)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric port", "HTTP_PORT", "eighty"},
		{"port out of range", "HTTP_PORT", "70000"},
		{"bad duration", "SESSION_TTL", "forever"},
		{"unknown level", "LOG_LEVEL", "loud"},
		{"negative gold", "STARTING_GOLD", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
