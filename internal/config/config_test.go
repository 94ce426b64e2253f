package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "PUBLIC_URL", "IMAGE_MODE", "PLACEHOLDER_BASE", "GAME_DURATION",
		"AUTO_ADVANCE", "LEVELS_FILE", "RESULTS_DB", "CLIENT_ORIGIN", "LINK_URL", "LINK_LABEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "datauri", cfg.ImageMode)
	assert.Equal(t, time.Duration(0), cfg.GameDuration)
	assert.False(t, cfg.AutoAdvance)
	assert.Equal(t, "http://localhost:5175/api/maze", cfg.PostURL())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("PUBLIC_URL", "https://minimaze.example/")
	t.Setenv("GAME_DURATION", "90s")
	t.Setenv("AUTO_ADVANCE", "true")
	t.Setenv("IMAGE_MODE", "placeholder")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.GameDuration)
	assert.True(t, cfg.AutoAdvance)
	assert.Equal(t, "placeholder", cfg.ImageMode)
	assert.Equal(t, "https://minimaze.example/api/maze", cfg.PostURL())
}

func TestGameDurationSeconds(t *testing.T) {
	clearEnv(t)
	t.Setenv("GAME_DURATION", "45")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.GameDuration)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for k, v := range map[string]string{
		"GAME_DURATION": "soon",
		"AUTO_ADVANCE":  "maybe",
	} {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			_, err := Load()
			assert.Error(t, err)
		})
	}
	clearEnv(t)
	t.Setenv("GAME_DURATION", "-5s")
	_, err := Load()
	assert.Error(t, err)
}
