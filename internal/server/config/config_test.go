package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	require.Empty(t, cfg.DatabaseDSN, "fresh deployments have no DSN until install")
	require.Empty(t, cfg.SecretKey)
	require.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
	require.False(t, cfg.Installed)
	require.Equal(t, "install.lock", cfg.MarkerPath)
}

func TestEffectiveSecret_FallbackWhenUnset(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.LoadDefaults()

	secret, fallback := cfg.EffectiveSecret()
	require.True(t, fallback)
	require.Equal(t, []byte(DefaultSecretKey), secret)
}

func TestEffectiveSecret_ConfiguredValueWins(t *testing.T) {
	t.Parallel()

	cfg := &Config{SecretKey: "configured"}

	secret, fallback := cfg.EffectiveSecret()
	require.False(t, fallback)
	require.Equal(t, []byte("configured"), secret)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv(EnvHTTPAddr, ":9999")
	t.Setenv(EnvSecretKey, "env-secret")
	t.Setenv(EnvInstalled, "true")
	t.Setenv(EnvTokenValidity, "24")
	t.Setenv(EnvCORSOrigins, "https://lab.example.org, https://admin.example.org")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	require.Equal(t, "env-secret", cfg.SecretKey)
	require.True(t, cfg.Installed)
	require.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
	require.Equal(t, []string{"https://lab.example.org", "https://admin.example.org"}, cfg.CORSOrigins)
}

func TestParseEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv(EnvInstalled, "definitely")
	t.Setenv(EnvTokenValidity, "-3")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.False(t, cfg.Installed)
	require.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
}
