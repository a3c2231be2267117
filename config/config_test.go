package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"DISCORD_TOKEN", "COMMAND_PREFIX", "TIMER_MIN_EDIT_INTERVAL",
		"TIMER_SHUTDOWN_GRACE", "TIMER_FINISH_MEDIA_URL",
		"DEFAULT_LANGUAGE", "DB_DSN", "HTTP_ADDR",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ".", cfg.CommandPrefix)
	require.Equal(t, time.Second, cfg.MinEditInterval)
	require.Equal(t, 2*time.Second, cfg.ShutdownGrace)
	require.Equal(t, "english", cfg.DefaultLanguage)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Empty(t, cfg.DBDsn)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("COMMAND_PREFIX", "!")
	t.Setenv("TIMER_MIN_EDIT_INTERVAL", "1500ms")
	t.Setenv("DEFAULT_LANGUAGE", "french")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "!", cfg.CommandPrefix)
	require.Equal(t, 1500*time.Millisecond, cfg.MinEditInterval)
	require.Equal(t, "french", cfg.DefaultLanguage)
	require.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestLoadRejectsBadEditInterval(t *testing.T) {
	t.Setenv("TIMER_MIN_EDIT_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("TIMER_MIN_EDIT_INTERVAL", "-1s")
	_, err = Load()
	require.Error(t, err)
}

func TestValidateDiscordReady(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.ValidateDiscordReady())
	cfg.DiscordToken = "tok"
	require.NoError(t, cfg.ValidateDiscordReady())
}
