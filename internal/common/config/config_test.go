package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 15*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, 5, cfg.OTPMaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.OTPCooldown)
	assert.Equal(t, 30*time.Minute, cfg.DraftIdleTTL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spaces.yaml")
	content := []byte("port: \"4000\"\nenv: production\nsubmit_timeout: 3s\nvenue_api_url: http://venues.internal\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "4100")
	t.Setenv("SIMULATE_DELAY_MS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4100", cfg.Port, "env wins over file")
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 3*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, "http://venues.internal", cfg.VenueAPIURL)
	assert.Equal(t, time.Duration(0), cfg.SimulateDelay)
}

func TestLoad_BadValuesKeepDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("READ_TIMEOUT", "soon")
	t.Setenv("OTP_TTL", "forever")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
