package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)

	dir := t.TempDir()
	cfg := Load(dir)

	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Equal(t, filepath.Join(dir, "token"), cfg.TokenPath)
	assert.Equal(t, filepath.Join(dir, "cache.db"), cfg.CachePath)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.DemoMode)
	require.NoError(t, cfg.validate())
}

func TestLoad_FromEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.AutomaticEnv()

	t.Setenv("SERVER_ADDRESS", "organizer.example:443")
	t.Setenv("ENABLE_TLS", "true")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")

	cfg := Load(t.TempDir())

	assert.True(t, cfg.DemoMode)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "https://organizer.example:443", cfg.BaseURL())
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Config{RequestTimeout: time.Second}).validate())
	assert.NoError(t, (&Config{DemoMode: true, RequestTimeout: time.Second}).validate())
	assert.Error(t, (&Config{ServerAddress: "localhost:8080"}).validate())
}
