package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBase(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/predictor")
	t.Setenv("JWT_SECRET_KEY", "secret")
	for _, key := range []string{
		"SERVER_PORT", "LOG_LEVEL", "TIEBREAK_PRESET", "PROVISIONAL_GROUP_OUTCOMES", "CORS_ALLOWED_ORIGINS",
		"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME", "R2_PUBLIC_BASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "default", cfg.TiebreakPreset)
	assert.False(t, cfg.ProvisionalGroupOutcomes)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.SnapshotsEnabled())
}

func TestLoadOverrides(t *testing.T) {
	setBase(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TIEBREAK_PRESET", "Euro2020")
	t.Setenv("PROVISIONAL_GROUP_OUTCOMES", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("R2_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "bucket")
	t.Setenv("R2_PUBLIC_BASE_URL", "https://cdn.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "euro2020", cfg.TiebreakPreset)
	assert.True(t, cfg.ProvisionalGroupOutcomes)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.SnapshotsEnabled())
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"SERVER_PORT":                "70000",
		"LOG_LEVEL":                  "loud",
		"TIEBREAK_PRESET":            "olympic",
		"PROVISIONAL_GROUP_OUTCOMES": "maybe",
		"DATABASE_URL":               "",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			setBase(t)
			t.Setenv(key, value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}
