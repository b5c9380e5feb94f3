package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Session: SessionConfig{TTL: 30 * 24 * time.Hour, RenewWindow: 15 * 24 * time.Hour},
		Payload: PayloadConfig{Key: "0123456789abcdef", Mode: CipherModeGCM},
		Media:   MediaConfig{Provider: MediaProviderLocal, SignedURLSecret: "secret"},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsMissingPayloadKey(t *testing.T) {
	cfg := validConfig()
	cfg.Payload.Key = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAYLOAD_ENCRYPTION_KEY")
}

func TestValidateRejectsShortPayloadKey(t *testing.T) {
	cfg := validConfig()
	cfg.Payload.Key = "short"
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownCipherMode(t *testing.T) {
	cfg := validConfig()
	cfg.Payload.Mode = "ecb"
	require.Error(t, cfg.Validate())
}

func TestValidateRequiresS3Bucket(t *testing.T) {
	cfg := validConfig()
	cfg.Media.Provider = MediaProviderS3
	require.Error(t, cfg.Validate())

	cfg.Media.S3Bucket = "school"
	cfg.Media.S3Region = "ap-southeast-1"
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsRenewWindowLongerThanTTL(t *testing.T) {
	cfg := validConfig()
	cfg.Session.RenewWindow = cfg.Session.TTL
	require.Error(t, cfg.Validate())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PAYLOAD_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("PAYLOAD_CIPHER_MODE", "CBC")
	t.Setenv("SESSION_TTL", "48h")
	t.Setenv("SESSION_RENEW_WINDOW", "24h")
	t.Setenv("MEDIA_ALLOWED_MIME_TYPES", "image/png, image/gif ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, CipherModeCBC, cfg.Payload.Mode)
	assert.Equal(t, 48*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 24*time.Hour, cfg.Session.RenewWindow)
	assert.Equal(t, "auth-session", cfg.Session.CookieName)
	assert.Equal(t, []string{"image/png", "image/gif"}, cfg.Media.AllowedMIMEs)
	assert.Equal(t, int64(5*1024*1024), cfg.Media.MaxFileSizeBytes)
}

func TestLoadDefaultsToGCMCipher(t *testing.T) {
	t.Setenv("PAYLOAD_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("PAYLOAD_CIPHER_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, CipherModeGCM, cfg.Payload.Mode)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}
