package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_defaults(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("STORAGE_PATH", "/tmp/mt/storage.json")
	t.Setenv("PROFILE_SYNC_INTERVAL", "")
	t.Setenv("EXPORT_INTERVAL", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("R2_BUCKET_NAME", "")

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", c.APIURL)
	assert.Equal(t, ":5300", c.HTTPAddr)
	assert.Equal(t, "/tmp/mt/storage.json", c.StoragePath)
	assert.Equal(t, 15*time.Minute, c.ProfileSyncInterval)
	assert.Zero(t, c.ExportInterval)
	assert.Zero(t, c.APITimeout)
	assert.False(t, c.ExportEnabled())
}

func TestFromEnv_overrides(t *testing.T) {
	t.Setenv("API_URL", "https://api.example.com/")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , http://b.test")
	t.Setenv("STORAGE_PATH", "/tmp/mt/storage.json")
	t.Setenv("TIMEZONE", "Europe/Madrid")
	t.Setenv("EXPORT_INTERVAL", "24h")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "id")
	t.Setenv("R2_ACCESS_KEY_SECRET", "secret")
	t.Setenv("R2_BUCKET_NAME", "bucket")

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", c.APIURL)
	assert.Equal(t, "http://a.test,http://b.test", c.AllowedOrigins)
	assert.Equal(t, "Europe/Madrid", c.Location.String())
	assert.Equal(t, 24*time.Hour, c.ExportInterval)
	assert.True(t, c.ExportEnabled())
}

func TestFromEnv_badDuration(t *testing.T) {
	t.Setenv("STORAGE_PATH", "/tmp/mt/storage.json")
	t.Setenv("PROFILE_SYNC_INTERVAL", "soon")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "PROFILE_SYNC_INTERVAL")
}
